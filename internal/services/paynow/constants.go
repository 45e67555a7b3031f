package paynow

// Top-level EMVCo tags, in payload order.
const (
	TagPayloadFormat    = "00"
	TagInitiationMethod = "01"
	TagMerchantAccount  = "26"
	TagMerchantCategory = "52"
	TagCurrency         = "53"
	TagAmount           = "54"
	TagCountry          = "58"
	TagMerchantName     = "59"
	TagMerchantCity     = "60"
	TagAdditionalData   = "62"
	TagCRC              = "63"
)

// Tag 26 (merchant account information) sub-tags.
const (
	SubTagGUID           = "00"
	SubTagProxyType      = "01"
	SubTagProxyValue     = "02"
	SubTagAmountEditable = "03"
	SubTagExpiryDate     = "04"
)

// Tag 62 (additional data) sub-tags.
const (
	SubTagReference = "01"
)

const (
	PayloadFormatIndicator = "01"
	StaticInitiation       = "12"
	PayNowGUID             = "SG.PAYNOW"
	MerchantCategoryCode   = "0000"
	CurrencySGD            = "702"
	CountrySG              = "SG"
	MerchantCity           = "Singapore"

	crcLength = "04"

	// maxValueLength is the largest value a two-digit length can describe.
	maxValueLength = 99
)

// DefaultReference is used when neither a reference nor a person name is given.
const DefaultReference = "Bill Split"
