// Package categorization assigns categories and tags to freshly normalized
// transactions from ordered keyword rule tables.
package categorization

// CategoryRule groups keywords under one category name. The rule tables are
// ordered: when two groups score the same keyword-hit count, the earlier
// declaration wins. That tie-break is a determinism contract, so the tables
// are immutable slices loaded once at startup, never maps.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// TagRule attaches a tag when any of its keywords hits. Unlike categories,
// tags are not exclusive: a transaction collects every tag whose rule hits.
type TagRule struct {
	Tag      string
	Keywords []string
}

// DefaultCategoryRules returns the built-in category table in declaration
// order.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"Food", []string{"swiggy", "zomato", "restaurant", "cafe", "dominos", "pizza", "mcdonald", "kfc", "eatery", "biryani", "dhaba"}},
		{"Groceries", []string{"bigbasket", "blinkit", "zepto", "dmart", "grofers", "grocery", "supermarket", "kirana", "reliance fresh"}},
		{"Transport", []string{"uber", "ola", "rapido", "irctc", "metro", "redbus", "petrol", "fuel", "diesel", "fastag", "parking"}},
		{"Shopping", []string{"amazon", "flipkart", "myntra", "ajio", "nykaa", "croma", "decathlon", "ikea"}},
		{"Entertainment", []string{"netflix", "spotify", "hotstar", "prime video", "bookmyshow", "youtube", "gaming", "steam"}},
		{"Utilities", []string{"electricity", "airtel", "jio", "vodafone", "broadband", "recharge", "dth", "gas bill", "water bill", "postpaid"}},
		{"Health", []string{"pharmacy", "apollo", "medplus", "hospital", "clinic", "1mg", "pharmeasy", "diagnostic"}},
		{"Rent", []string{"rent", "landlord", "nobroker", "lease"}},
		{"Investment", []string{"zerodha", "groww", "upstox", "mutual fund", "sip ", "nps", "ppf", "fixed deposit"}},
		{"Salary", []string{"salary", "payroll", "stipend", "wages"}},
		{"Education", []string{"udemy", "coursera", "tuition", "school fee", "college", "byjus"}},
		{"Travel", []string{"makemytrip", "goibibo", "cleartrip", "oyo", "airbnb", "indigo", "vistara", "air india", "hotel"}},
	}
}

// DefaultTagRules returns the built-in tag table in declaration order.
func DefaultTagRules() []TagRule {
	return []TagRule{
		{"food-delivery", []string{"swiggy", "zomato"}},
		{"ride-hailing", []string{"uber", "ola", "rapido"}},
		{"online-shopping", []string{"amazon", "flipkart", "myntra", "ajio"}},
		{"subscription", []string{"netflix", "spotify", "hotstar", "prime", "youtube premium"}},
		{"upi", []string{"upi"}},
		{"atm", []string{"atm", "atw", "cash withdrawal"}},
		{"emi", []string{"emi", "loan"}},
		{"travel", []string{"irctc", "indigo", "makemytrip", "oyo", "airbnb"}},
		{"recurring", []string{"rent", "sip ", "premium", "postpaid"}},
	}
}
