package domain

// Default configuration values
const (
	DefaultSlotCapacity     = 2
	DefaultDeposit          = 500.0
	DefaultOpenTime         = "09:00"
	DefaultCloseTime        = "20:00"
	DefaultShopName         = "Salon"
	DefaultMinNoticeMinutes = 0
	SlotGranularityMinutes  = 30
)

// Business validation constants
const (
	MinSlotCapacity      = 1
	MaxSlotCapacity      = 50
	MaxNameLength        = 100
	MaxPhoneLength       = 20
	MaxNotesLength       = 500
	MaxAdminNoteLength   = 500
	MaxServiceNameLength = 100
)

// Time format constants
const (
	TimeFormat       = "15:04"      // HH:MM
	DateFormat       = "2006-01-02" // YYYY-MM-DD
	MonthFormat      = "2006-01"    // YYYY-MM
	SlotKeySeparator = "_"
)

// DefaultServices каталог услуг по умолчанию, если в настройках он пустой
var DefaultServices = []string{
	"ดัดวอลลุ่ม",
	"ทำสี",
	"ทรีทเมนต์",
	"สระไดร์",
	"ตัดซอย",
}

// ActiveStatuses статусы, которые занимают слот при расчёте доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses закрытый список статусов
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRejected,
	StatusCancelled,
}
