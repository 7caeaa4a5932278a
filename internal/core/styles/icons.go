package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconDrag      = "⠿"
	IconEdit      = ""
	IconLock      = ""
	IconChecked   = ""
	IconUnchecked = ""
	IconHidden    = ""
	IconInvoice   = "\U000F0219"
)

// Notification icons
var (
	IconInfo    = ""
	IconWarning = ""
	IconError   = ""
)
