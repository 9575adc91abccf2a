package chat

// faqEntry is matched against the message by its key terms, so the question
// wording only has to be close.
type faqEntry struct {
	question string
	answer   string
}

var faq = []faqEntry{
	{
		"what is retinol",
		"Retinol is a vitamin A derivative that speeds up cell turnover. It helps with fine lines, acne and uneven texture. Start with a low strength at night, follow with moisturizer, and wear sunscreen every morning while using it.",
	},
	{
		"how to layer skincare",
		"Layer from thinnest to thickest: cleanser, toner, serums, eye cream, treatments such as retinol, moisturizer, then face oil at night or sunscreen during the day.",
	},
	{
		"how often should i exfoliate",
		"BHAs such as salicylic acid suit oily or acne-prone skin 2-3 times a week. AHAs such as glycolic acid suit normal or dry skin 1-2 times a week. Keep physical scrubs to once a week and back off if your skin gets irritated.",
	},
	{
		"what spf should i use",
		"Use a broad-spectrum SPF 30 or higher every day, cloudy or not. For long stretches outdoors pick SPF 50+ and reapply every two hours and after swimming or sweating.",
	},
	{
		"how to treat acne",
		"Look for salicylic acid to clear pores, benzoyl peroxide to kill bacteria, niacinamide to calm inflammation or a retinoid to prevent clogging. Cleanse consistently, don't pick, and see a dermatologist if breakouts persist.",
	},
	{
		"what is double cleansing",
		"Double cleansing means an oil-based cleanser first to lift makeup, sunscreen and sebum, then a water-based cleanser for the skin itself. It cleans thoroughly without stripping and helps most if you wear makeup or sunscreen daily.",
	},
	{
		"how to reduce dark circles",
		"Vitamin C, vitamin K, caffeine and peptides all help with dark circles. Use a dedicated eye cream, sleep enough, stay hydrated and protect the area with sunscreen. A dermatologist can suggest fillers or laser for stubborn cases.",
	},
	{
		"what is skin purging",
		"Purging is a temporary breakout caused by actives that speed up cell turnover, such as retinoids, AHAs and BHAs. It shows up where you usually break out and settles within 4-6 weeks. Breakouts in new places or lasting longer point to a bad reaction instead.",
	},
	{
		"how to treat hyperpigmentation",
		"Vitamin C, niacinamide, alpha arbutin, kojic acid and tranexamic acid all fade hyperpigmentation. Exfoliate regularly with AHAs and never skip sunscreen, since UV darkens spots. Expect it to take months; peels or laser help stubborn cases.",
	},
	{
		"what order to apply skincare",
		"Apply cleanser, toner, treatment serums (vitamin C in the morning, retinol or acids at night), eye cream, moisturizer, optional face oil, and sunscreen in the morning. Go from thinnest to thickest and give each layer a minute to absorb.",
	},
}

// ingredientInfo is checked in order; the first key that contains, or is
// contained in, the asked-about ingredient wins.
var ingredientInfo = []struct {
	name string
	info string
}{
	{"hyaluronic acid", "Hyaluronic acid is a humectant that holds many times its weight in water. It draws moisture into the skin for a plumper look and softer fine lines, and suits every skin type including oily and acne-prone."},
	{"retinol", "Retinol is a vitamin A derivative that promotes cell turnover and collagen production. It targets fine lines, acne, texture and pigmentation. Start at 0.25-0.5% once or twice a week and always wear sunscreen by day."},
	{"vitamin c", "Vitamin C is an antioxidant that brightens, fades pigmentation and protects against environmental damage while supporting collagen. Stable forms include L-ascorbic acid at 15-20%. Use it in the morning under sunscreen."},
	{"niacinamide", "Niacinamide (vitamin B3) regulates oil, strengthens the barrier, reduces redness, refines pores and fades pigmentation. It is well tolerated at 2-10% and combines with most actives, retinol and vitamin C included."},
	{"salicylic acid", "Salicylic acid is an oil-soluble BHA that exfoliates inside the pore. It treats and prevents acne and blackheads and calms inflammation. Use 0.5-2% two or three times a week, or daily on oilier skin."},
	{"glycolic acid", "Glycolic acid is the smallest AHA and penetrates deeply. It loosens dead cells to improve texture, brightness, fine lines and pigmentation. Start with a low concentration once or twice a week."},
	{"peptides", "Peptides are short amino-acid chains that signal the skin to build collagen and elastin, giving firmer skin with fewer fine lines. They are gentle enough for every skin type and pair well with antioxidants and retinol."},
	{"ceramides", "Ceramides are lipids that make up about half of the skin barrier. They lock in moisture and keep irritants out, which helps dry, sensitive and eczema-prone skin most."},
	{"azelaic acid", "Azelaic acid fights acne, reduces redness and fades pigmentation. It is antibacterial and anti-inflammatory, gentle enough for rosacea, and usually used at 10-20%."},
	{"squalane", "Squalane is a light, non-comedogenic oil that mimics sebum. It hydrates without grease, supports the barrier and does not oxidize, so it suits oily skin as well as dry."},
}

// compatibilityPairs answers questions about combining two actives. Keys are
// stored in one order; lookups try both.
var compatibilityPairs = map[[2]string]string{
	{"retinol", "vitamin c"}:          "Retinol and vitamin C can irritate together and prefer different pH levels. Use vitamin C in the morning and retinol at night, or wait 30 minutes between them.",
	{"retinol", "aha"}:                "Retinol and AHAs together risk over-exfoliation and a weakened barrier. Alternate nights, or use the AHA in the morning and retinol at night.",
	{"retinol", "bha"}:                "Retinol and BHAs can both irritate. Alternate them, or apply the BHA first and wait 30 minutes before retinol if your skin tolerates it.",
	{"retinol", "niacinamide"}:        "Retinol and niacinamide work well together. Niacinamide supports the barrier and softens retinol's irritation. Apply niacinamide first.",
	{"retinol", "hyaluronic acid"}:    "Retinol and hyaluronic acid pair well. Apply hyaluronic acid to damp skin, let it absorb, then follow with retinol.",
	{"retinol", "peptides"}:           "Retinol and peptides support anti-aging in different ways. Apply peptides first and wait 10-15 minutes, or use them at different times of day.",
	{"vitamin c", "niacinamide"}:      "Vitamin C and niacinamide can be used together in modern formulas. Apply vitamin C first, or use them at different times of day.",
	{"vitamin c", "aha"}:              "Vitamin C and AHAs don't cancel out but may raise sensitivity. Apply the AHA first and wait 15-30 minutes, or use AHAs at night.",
	{"vitamin c", "bha"}:              "Vitamin C and BHAs can be combined but may sensitize. Apply the BHA first and wait 15-30 minutes, or keep BHA for the evening.",
	{"aha", "bha"}:                    "AHAs and BHAs together give stronger exfoliation for oily, textured skin but can irritate. Alternate days first; if tolerated, apply BHA then AHA.",
	{"niacinamide", "aha"}:            "Niacinamide and AHAs work well together. Apply the AHA, wait 15-30 minutes for the pH to settle, then niacinamide.",
	{"niacinamide", "bha"}:            "Niacinamide and BHAs suit oily and acne-prone skin: the BHA clears pores and niacinamide calms and regulates oil. Apply the BHA first.",
	{"benzoyl peroxide", "retinol"}:   "Benzoyl peroxide can deactivate retinol. Use one in the morning and the other at night, or on alternate days.",
	{"benzoyl peroxide", "vitamin c"}: "Benzoyl peroxide oxidizes vitamin C. Use vitamin C in the morning and benzoyl peroxide at night.",
}

// compatibilityTerms are the actives recognised in compatibility questions.
var compatibilityTerms = []string{
	"retinol", "vitamin c", "niacinamide", "aha", "bha", "hyaluronic acid",
	"peptides", "vitamin e", "benzoyl peroxide", "hydroquinone", "acids",
}

const (
	compatibilityGeneral = "Apply products from thinnest to thickest. Common clashes are retinol with AHAs or BHAs (irritation), vitamin C with retinol (reduced effect), benzoyl peroxide with retinol (deactivation) and several strong acids at once (barrier damage). Name the ingredients you want to combine for specific advice."

	frequencyGeneral = "As a rule of thumb: cleansers, toners, serums and moisturizers 1-2 times daily; sunscreen every morning and every 2 hours outdoors; exfoliants 1-3 times weekly; masks 1-2 times weekly. Introduce new products gradually and tell me the product type for specific advice."

	routineMorning = "Morning routine:\n\n1. Gentle cleanser\n2. Toner (optional)\n3. Vitamin C serum\n4. Eye cream\n5. Moisturizer\n6. Sunscreen SPF 30+\n\nMornings are about protection."

	routineEvening = "Evening routine:\n\n1. Oil cleanser or makeup remover\n2. Water-based cleanser\n3. Exfoliant 2-3 times a week\n4. Toner (optional)\n5. Treatment serums such as retinol or peptides\n6. Eye cream\n7. Moisturizer\n8. Face oil (optional)\n\nEvenings are the time for actives."

	routineGeneral = "MORNING: cleanser, toner (optional), antioxidant serum, eye cream, moisturizer, sunscreen SPF 30+.\n\nEVENING: oil cleanser if needed, water-based cleanser, exfoliant 2-3 times weekly, toner (optional), treatment serums, eye cream, moisturizer, face oil (optional).\n\nStart with cleanser, moisturizer and sunscreen and add steps gradually."

	noProducts = "I couldn't find products matching that. Try the skin analysis for personalised recommendations."

	unknownIngredient = "I'm not sure which ingredient you mean. Could you name it?"
)

var frequencyRules = []struct {
	pattern string
	answer  string
}{
	{`\b(retinol|vitamin a|tretinoin)\b`, "Start retinoids 1-2 times a week with a pea-sized amount on dry skin at night, increasing as your skin adjusts. Begin at 0.25-0.5% and wear sunscreen daily."},
	{`\b(exfoliat\w*|scrub|peel|aha|bha|glycolic|salicylic)\b`, "Oily or acne-prone skin usually handles chemical exfoliants 2-3 times a week; dry or sensitive skin 1-2 times. Keep scrubs to 1-2 times weekly and stop if you see redness or stinging."},
	{`\b(vitamin c|ascorbic)\b`, "Vitamin C serum can be used every morning under sunscreen. Sensitive skin can start every other day."},
	{`\b(face mask|sheet mask|clay mask|masque)\b`, "Hydrating masks 2-3 times a week, clay masks once a week (twice for very oily skin), sheet masks 1-3 times a week."},
	{`\b(cleanser|cleanse|wash)\b`, "Cleanse twice a day. Very dry or sensitive skin can use water only in the morning; very oily skin may add a gentle midday cleanse."},
	{`\b(moisturizer|moisturize|cream|lotion)\b`, "Moisturize twice a day: before sunscreen in the morning and as the last step at night. Oily skin may prefer a light gel; dry skin a richer night cream."},
	{`\b(sunscreen|spf|sun protection)\b`, "Apply sunscreen every morning as the last step, about a quarter teaspoon for the face, and reapply every 2 hours outdoors."},
}

// fallbackReplies are chosen by a hash of the message so the same question
// always gets the same reply.
var fallbackReplies = []string{
	"I'm not sure I understand. Could you rephrase or ask about a specific skin concern?",
	"For personalised advice, try the skin analysis or browse your product recommendations.",
	"Good question! For the most accurate advice, a dermatologist is your best bet.",
	"I need a bit more detail to answer that. What is your skin type and main concern?",
}
