package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Items() ItemRepository
	Transactions() TransactionRepository
	Orders() OrderRepository
	Attachments() AttachmentRepository
	Demos() DemoRepository
	Transitions() TransitionRepository
}
