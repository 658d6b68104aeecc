package ports

//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

// Notifier surfaces user-facing messages such as reload results.
type Notifier interface {
	Notify(msg string)
	NotifyError(err error)
}
