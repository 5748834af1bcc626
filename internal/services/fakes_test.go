package services

import (
	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
)

// Fakes embed the repository interface so each test overrides only the
// methods the code under test actually calls. An unexpected call panics,
// which surfaces as a clear test failure.

type fakeUserRepo struct {
	repositories.UserRepository
	createUser     func(user *models.User) (int64, error)
	getUserByEmail func(email string) (*models.User, error)
	getUserByID    func(id int64) (*models.User, error)
	getUsers       func() ([]models.User, error)
	updateUser     func(user *models.User) error
}

func (f *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	return f.createUser(user)
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return f.getUserByEmail(email)
}

func (f *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	return f.getUserByID(id)
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	return f.getUsers()
}

func (f *fakeUserRepo) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	return f.updateUser(user)
}

type fakeMenuRepo struct {
	repositories.MenuRepository
	createMenuItem    func(item *models.MenuItem) (int64, error)
	getMenuItemByID   func(id int64) (*models.MenuItem, error)
	getMenuItemByName func(name string) (*models.MenuItem, error)
	updateMenuItem    func(item *models.MenuItem) error
}

func (f *fakeMenuRepo) CreateMenuItem(_ repositories.SQLExecutor, item *models.MenuItem) (int64, error) {
	return f.createMenuItem(item)
}

func (f *fakeMenuRepo) GetMenuItemByID(id int64) (*models.MenuItem, error) {
	return f.getMenuItemByID(id)
}

func (f *fakeMenuRepo) GetMenuItemByName(name string) (*models.MenuItem, error) {
	return f.getMenuItemByName(name)
}

func (f *fakeMenuRepo) UpdateMenuItem(_ repositories.SQLExecutor, item *models.MenuItem) error {
	return f.updateMenuItem(item)
}

type fakeOrderRepo struct {
	repositories.OrderRepository
	createOrder        func(order *models.Order) (int64, error)
	getOrderByID       func(id int64) (*models.Order, error)
	createOrderItem    func(item *models.OrderItem) (int64, error)
	getOrderItemByID   func(id int64) (*models.OrderItem, error)
	updateOrderItem    func(item *models.OrderItem) error
	deleteOrderItem    func(id int64) error
	sumOrderItemTotals func(orderID int64) (float64, error)
	updateOrderTotal   func(orderID int64, total float64) error
	getOrderItemsByOID func(orderID int64) ([]models.OrderItem, error)
}

func (f *fakeOrderRepo) CreateOrder(_ repositories.SQLExecutor, order *models.Order) (int64, error) {
	return f.createOrder(order)
}

func (f *fakeOrderRepo) GetOrderByID(id int64) (*models.Order, error) {
	return f.getOrderByID(id)
}

func (f *fakeOrderRepo) CreateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) (int64, error) {
	return f.createOrderItem(item)
}

func (f *fakeOrderRepo) GetOrderItemByID(id int64) (*models.OrderItem, error) {
	return f.getOrderItemByID(id)
}

func (f *fakeOrderRepo) UpdateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) error {
	return f.updateOrderItem(item)
}

func (f *fakeOrderRepo) DeleteOrderItem(_ repositories.SQLExecutor, id int64) error {
	return f.deleteOrderItem(id)
}

func (f *fakeOrderRepo) SumOrderItemTotals(_ repositories.SQLExecutor, orderID int64) (float64, error) {
	return f.sumOrderItemTotals(orderID)
}

func (f *fakeOrderRepo) UpdateOrderTotal(_ repositories.SQLExecutor, orderID int64, total float64) error {
	return f.updateOrderTotal(orderID, total)
}

func (f *fakeOrderRepo) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	return f.getOrderItemsByOID(orderID)
}

type fakeStockRepo struct {
	repositories.StockRepository
	createStockItem  func(item *models.StockItem) (int64, error)
	getStockItemByID func(id int64) (*models.StockItem, error)
	updateStockItem  func(item *models.StockItem) error
}

func (f *fakeStockRepo) CreateStockItem(_ repositories.SQLExecutor, item *models.StockItem) (int64, error) {
	return f.createStockItem(item)
}

func (f *fakeStockRepo) GetStockItemByID(id int64) (*models.StockItem, error) {
	return f.getStockItemByID(id)
}

func (f *fakeStockRepo) UpdateStockItem(_ repositories.SQLExecutor, item *models.StockItem) error {
	return f.updateStockItem(item)
}

type fakePaymentRepo struct {
	repositories.PaymentRepository
	createPayment  func(payment *models.Payment) (int64, error)
	getPaymentByID func(id int64) (*models.Payment, error)
	updatePayment  func(payment *models.Payment) error
}

func (f *fakePaymentRepo) CreatePayment(_ repositories.SQLExecutor, payment *models.Payment) (int64, error) {
	return f.createPayment(payment)
}

func (f *fakePaymentRepo) GetPaymentByID(id int64) (*models.Payment, error) {
	return f.getPaymentByID(id)
}

func (f *fakePaymentRepo) UpdatePayment(_ repositories.SQLExecutor, payment *models.Payment) error {
	return f.updatePayment(payment)
}

type fakeInvoiceRepo struct {
	repositories.InvoiceRepository
	createInvoice          func(invoice *models.Invoice) (int64, error)
	getInvoiceByID         func(id int64) (*models.Invoice, error)
	getInvoicesByPaymentID func(paymentID int64) ([]models.Invoice, error)
}

func (f *fakeInvoiceRepo) CreateInvoice(_ repositories.SQLExecutor, invoice *models.Invoice) (int64, error) {
	return f.createInvoice(invoice)
}

func (f *fakeInvoiceRepo) GetInvoiceByID(id int64) (*models.Invoice, error) {
	return f.getInvoiceByID(id)
}

func (f *fakeInvoiceRepo) GetInvoicesByPaymentID(paymentID int64) ([]models.Invoice, error) {
	return f.getInvoicesByPaymentID(paymentID)
}

type fakeTableRepo struct {
	repositories.TableRepository
	createTable       func(table *models.Table) (int64, error)
	getTableByID      func(id int64) (*models.Table, error)
	getTableByNumber  func(number int) (*models.Table, error)
	updateTable       func(table *models.Table) error
	updateTableStatus func(id int64, status string) error
	deleteTable       func(id int64) error
}

func (f *fakeTableRepo) CreateTable(_ repositories.SQLExecutor, table *models.Table) (int64, error) {
	return f.createTable(table)
}

func (f *fakeTableRepo) GetTableByID(id int64) (*models.Table, error) {
	return f.getTableByID(id)
}

func (f *fakeTableRepo) GetTableByNumber(number int) (*models.Table, error) {
	return f.getTableByNumber(number)
}

func (f *fakeTableRepo) UpdateTable(_ repositories.SQLExecutor, table *models.Table) error {
	return f.updateTable(table)
}

func (f *fakeTableRepo) UpdateTableStatus(_ repositories.SQLExecutor, id int64, status string) error {
	return f.updateTableStatus(id, status)
}

func (f *fakeTableRepo) DeleteTable(_ repositories.SQLExecutor, id int64) error {
	return f.deleteTable(id)
}

type fakeReservationRepo struct {
	repositories.ReservationRepository
	createReservation           func(reservation *models.Reservation) (int64, error)
	getReservationByID          func(id int64) (*models.Reservation, error)
	getReservationsByTableID    func(tableID int64) ([]models.Reservation, error)
	updateReservation           func(reservation *models.Reservation) error
	deleteReservation           func(id int64) error
	deleteReservationsByTableID func(tableID int64) (int64, error)
}

func (f *fakeReservationRepo) DeleteReservationsByTableID(_ repositories.SQLExecutor, tableID int64) (int64, error) {
	return f.deleteReservationsByTableID(tableID)
}

func (f *fakeReservationRepo) GetReservationsByTableID(tableID int64) ([]models.Reservation, error) {
	return f.getReservationsByTableID(tableID)
}

func (f *fakeReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (int64, error) {
	return f.createReservation(reservation)
}

func (f *fakeReservationRepo) GetReservationByID(id int64) (*models.Reservation, error) {
	return f.getReservationByID(id)
}

func (f *fakeReservationRepo) UpdateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) error {
	return f.updateReservation(reservation)
}

func (f *fakeReservationRepo) DeleteReservation(_ repositories.SQLExecutor, id int64) error {
	return f.deleteReservation(id)
}
