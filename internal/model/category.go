package model

// Category is the closed set of values an analysis pass may assign. The
// database stores the literal string form; everything else goes through this
// type so a typo cannot invent a new category.
type Category string

const (
	CategoryWorkImportant Category = "Work: Important"
	CategoryWorkRoutine   Category = "Work: Routine"
	CategoryPersonal      Category = "Personal"
	CategorySpam          Category = "Spam"
	CategoryNewsletter    Category = "Newsletter"
	CategoryFinance       Category = "Finance"
	CategoryTravel        Category = "Travel"
	CategorySocial        Category = "Social"
	CategoryPromotions    Category = "Promotions"
	CategoryGeneral       Category = "General"
)

// CategoryPending marks an email no analysis pass has completed on yet. It is
// not a member of the closed set and the model is never allowed to return it.
const CategoryPending = "Pending Analysis"

// CategoryMissing is written when a provider response parsed but omitted the
// category key. Visible on purpose: category drives routing and must not fail
// silently into a default.
const CategoryMissing = "(Missing Category)"

// maxUnknownCategoryLen bounds the raw value echoed back in the marker.
const maxUnknownCategoryLen = 40

// UnknownCategory marks a value the model returned that is outside the closed
// set. The rejected value is embedded so a model typo can be told apart from
// an omitted key.
func UnknownCategory(raw string) string {
	if len(raw) > maxUnknownCategoryLen {
		raw = raw[:maxUnknownCategoryLen]
	}
	return "(Unknown Category: " + raw + ")"
}

var allCategories = []Category{
	CategoryWorkImportant,
	CategoryWorkRoutine,
	CategoryPersonal,
	CategorySpam,
	CategoryNewsletter,
	CategoryFinance,
	CategoryTravel,
	CategorySocial,
	CategoryPromotions,
	CategoryGeneral,
}

// 每个分类一行提示语，拼进分析 prompt
var categoryGuidance = map[Category]string{
	CategoryWorkImportant: "time-sensitive work matters, deadlines, escalations, anything from leadership",
	CategoryWorkRoutine:   "ordinary work traffic: status updates, meeting notes, FYI threads",
	CategoryPersonal:      "mail from friends or family, non-work personal matters",
	CategorySpam:          "unsolicited bulk mail, scams, phishing attempts",
	CategoryNewsletter:    "subscribed periodic digests and editorial mailings",
	CategoryFinance:       "invoices, payments, receipts, banking and billing notices",
	CategoryTravel:        "bookings, itineraries, check-in notices, travel changes",
	CategorySocial:        "social network notifications, event invites, community updates",
	CategoryPromotions:    "marketing offers, discounts, product announcements",
	CategoryGeneral:       "anything that fits none of the above; never leave an email uncategorized",
}

// AllCategories returns the closed category set in stable order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Guidance returns the one-line classification hint for the category.
func (c Category) Guidance() string {
	return categoryGuidance[c]
}

// ParseCategory maps a raw string onto the closed set.
func ParseCategory(s string) (Category, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
