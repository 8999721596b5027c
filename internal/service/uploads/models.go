package uploads

// Kind вид загружаемого файла, определяет папку в хранилище
type Kind string

const (
	KindSlip Kind = "slip"
	KindLogo Kind = "logo"
	KindQR   Kind = "qr"
)

// MaxFileSize максимальный размер загружаемого файла
const MaxFileSize = 5 << 20

// maxLogoWidth ширина, до которой уменьшается логотип
const maxLogoWidth = 512

var folders = map[Kind]string{
	KindSlip: "slips",
	KindLogo: "logos",
	KindQR:   "qrs",
}

// ParseKind проверяет вид загрузки из URL
func ParseKind(raw string) (Kind, error) {
	kind := Kind(raw)
	if _, ok := folders[kind]; !ok {
		return "", ErrUnknownKind
	}
	return kind, nil
}

// File загружаемый файл
type File struct {
	Name        string // Исходное имя файла у клиента
	ContentType string // Заявленный тип содержимого
	Data        []byte
}

// Result результат загрузки
type Result struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
}
