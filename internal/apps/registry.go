// Package apps holds the allow-list of payment app package names. Only
// notifications posted by one of these packages are handed to the analysis
// engine.
package apps

// defaultAppName is used for packages added to the allow-list without a
// display name mapping.
const defaultAppName = "UPI App"

var displayNames = map[string]string{
	"com.phonepe.app":                         "PhonePe",
	"com.google.android.apps.nbu.paisa.user":  "Google Pay",
	"net.one97.paytm":                         "Paytm",
	"in.org.npci.upiapp":                      "BHIM",
	"in.amazon.mShop.android.shopping":        "Amazon Pay",
	"com.bharatpe.merchant.flutter":           "BharatPe",
	"com.freecharge.android":                  "Freecharge",
	"com.mobikwik_new":                        "MobiKwik",
	"com.whatsapp":                            "WhatsApp",
	"com.paypal.android.p2pmobile":            "PayPal",
	"com.dreamplug.androidapp":                "CRED",
	"com.myairtelapp":                         "Airtel Payments",
	"com.csam.icici.bank.imobile":             "iMobile Pay",
	"com.axis.mobile":                         "Axis Mobile",
	"com.sbi.lotusintouch":                    "YONO SBI",
	"com.snapwork.hdfc":                       "HDFC Bank",
	"com.fb.app":                              "Federal Bank",
	"com.pnb.onlite":                          "PNB One",
}

// IsPaymentApp reports whether the package is on the allow-list.
func IsPaymentApp(packageName string) bool {
	_, ok := displayNames[packageName]
	return ok
}

// DisplayName returns the human name shown in history and announcements.
// Unknown packages fall back to a generic name so stored records never carry
// a raw package identifier.
func DisplayName(packageName string) string {
	if name, ok := displayNames[packageName]; ok {
		return name
	}
	return defaultAppName
}

// Packages returns the allow-listed package names.
func Packages() []string {
	names := make([]string, 0, len(displayNames))
	for pkg := range displayNames {
		names = append(names, pkg)
	}
	return names
}
