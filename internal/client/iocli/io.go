package iocli

//go:generate moq -out io_mock.go . IO

// IO - ввод/вывод CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadAll читает stdin до EOF (payload сохранения, переданный через pipe)
	ReadAll() ([]byte, error)
	// IsInteractive сообщает, подключен ли stdin к терминалу
	IsInteractive() bool
	Write(p []byte) (n int, err error)
}
