package repository

// Factory describes access to the different domain repositories.
type Factory interface {
	Cars() CarRepository
	Categories() CategoryRepository
	Customers() CustomerRepository
	Managers() ManagerRepository
	Purchases() PurchaseRepository
}
