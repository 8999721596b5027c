package identity

// Identity проверенная личность вызывающего
type Identity struct {
	UID   string
	Email string
}
