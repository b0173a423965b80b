// Code generated by MockGen. DO NOT EDIT.
// Source: internal/repositories/interfaces.go
//
// Generated by this command:
//
//	mockgen -source=internal/repositories/interfaces.go -destination=internal/repositories/repository_mocks/repository_mocks.go -package=repository_mocks
//

// Package repository_mocks is a generated GoMock package.
package repository_mocks

import (
	models "fintrack/internal/models"
	repositories "fintrack/internal/repositories"
	reflect "reflect"
	time "time"

	uuid "github.com/google/uuid"
	decimal "github.com/shopspring/decimal"
	gomock "github.com/golang/mock/gomock"
)

// MockUserRepositoryInterface is a mock of UserRepositoryInterface interface.
type MockUserRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockUserRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockUserRepositoryInterfaceMockRecorder is the mock recorder for MockUserRepositoryInterface.
type MockUserRepositoryInterfaceMockRecorder struct {
	mock *MockUserRepositoryInterface
}

// NewMockUserRepositoryInterface creates a new mock instance.
func NewMockUserRepositoryInterface(ctrl *gomock.Controller) *MockUserRepositoryInterface {
	mock := &MockUserRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockUserRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserRepositoryInterface) EXPECT() *MockUserRepositoryInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockUserRepositoryInterface) Create(user *models.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", user)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockUserRepositoryInterfaceMockRecorder) Create(user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockUserRepositoryInterface)(nil).Create), user)
}

// Delete mocks base method.
func (m *MockUserRepositoryInterface) Delete(userID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockUserRepositoryInterfaceMockRecorder) Delete(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockUserRepositoryInterface)(nil).Delete), userID)
}

// GetByEmail mocks base method.
func (m *MockUserRepositoryInterface) GetByEmail(email string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByEmail", email)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByEmail indicates an expected call of GetByEmail.
func (mr *MockUserRepositoryInterfaceMockRecorder) GetByEmail(email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByEmail", reflect.TypeOf((*MockUserRepositoryInterface)(nil).GetByEmail), email)
}

// GetByID mocks base method.
func (m *MockUserRepositoryInterface) GetByID(id uuid.UUID) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", id)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockUserRepositoryInterfaceMockRecorder) GetByID(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserRepositoryInterface)(nil).GetByID), id)
}

// GetByUsername mocks base method.
func (m *MockUserRepositoryInterface) GetByUsername(username string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByUsername", username)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByUsername indicates an expected call of GetByUsername.
func (mr *MockUserRepositoryInterfaceMockRecorder) GetByUsername(username any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByUsername", reflect.TypeOf((*MockUserRepositoryInterface)(nil).GetByUsername), username)
}

// ResetFailedLoginAttempts mocks base method.
func (m *MockUserRepositoryInterface) ResetFailedLoginAttempts(userID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetFailedLoginAttempts", userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ResetFailedLoginAttempts indicates an expected call of ResetFailedLoginAttempts.
func (mr *MockUserRepositoryInterfaceMockRecorder) ResetFailedLoginAttempts(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetFailedLoginAttempts", reflect.TypeOf((*MockUserRepositoryInterface)(nil).ResetFailedLoginAttempts), userID)
}

// Update mocks base method.
func (m *MockUserRepositoryInterface) Update(user *models.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", user)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockUserRepositoryInterfaceMockRecorder) Update(user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockUserRepositoryInterface)(nil).Update), user)
}

// UpdateFailedLoginAttempts mocks base method.
func (m *MockUserRepositoryInterface) UpdateFailedLoginAttempts(user *models.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateFailedLoginAttempts", user)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateFailedLoginAttempts indicates an expected call of UpdateFailedLoginAttempts.
func (mr *MockUserRepositoryInterfaceMockRecorder) UpdateFailedLoginAttempts(user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateFailedLoginAttempts", reflect.TypeOf((*MockUserRepositoryInterface)(nil).UpdateFailedLoginAttempts), user)
}

// UpdatePasswordHash mocks base method.
func (m *MockUserRepositoryInterface) UpdatePasswordHash(userID uuid.UUID, passwordHash string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdatePasswordHash", userID, passwordHash)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdatePasswordHash indicates an expected call of UpdatePasswordHash.
func (mr *MockUserRepositoryInterfaceMockRecorder) UpdatePasswordHash(userID, passwordHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdatePasswordHash", reflect.TypeOf((*MockUserRepositoryInterface)(nil).UpdatePasswordHash), userID, passwordHash)
}

// MockItemRepositoryInterface is a mock of ItemRepositoryInterface interface.
type MockItemRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockItemRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockItemRepositoryInterfaceMockRecorder is the mock recorder for MockItemRepositoryInterface.
type MockItemRepositoryInterfaceMockRecorder struct {
	mock *MockItemRepositoryInterface
}

// NewMockItemRepositoryInterface creates a new mock instance.
func NewMockItemRepositoryInterface(ctrl *gomock.Controller) *MockItemRepositoryInterface {
	mock := &MockItemRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockItemRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockItemRepositoryInterface) EXPECT() *MockItemRepositoryInterfaceMockRecorder {
	return m.recorder
}

// CountEntries mocks base method.
func (m *MockItemRepositoryInterface) CountEntries(userID uuid.UUID, itemID int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountEntries", userID, itemID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountEntries indicates an expected call of CountEntries.
func (mr *MockItemRepositoryInterfaceMockRecorder) CountEntries(userID, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountEntries", reflect.TypeOf((*MockItemRepositoryInterface)(nil).CountEntries), userID, itemID)
}

// Create mocks base method.
func (m *MockItemRepositoryInterface) Create(item *models.Item) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockItemRepositoryInterfaceMockRecorder) Create(item any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockItemRepositoryInterface)(nil).Create), item)
}

// Delete mocks base method.
func (m *MockItemRepositoryInterface) Delete(userID uuid.UUID, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", userID, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockItemRepositoryInterfaceMockRecorder) Delete(userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockItemRepositoryInterface)(nil).Delete), userID, id)
}

// GetByID mocks base method.
func (m *MockItemRepositoryInterface) GetByID(userID uuid.UUID, id int64) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", userID, id)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockItemRepositoryInterfaceMockRecorder) GetByID(userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockItemRepositoryInterface)(nil).GetByID), userID, id)
}

// GetPage mocks base method.
func (m *MockItemRepositoryInterface) GetPage(userID uuid.UUID, query models.TableQuery) ([]models.Item, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPage", userID, query)
	ret0, _ := ret[0].([]models.Item)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetPage indicates an expected call of GetPage.
func (mr *MockItemRepositoryInterfaceMockRecorder) GetPage(userID, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPage", reflect.TypeOf((*MockItemRepositoryInterface)(nil).GetPage), userID, query)
}

// ListByType mocks base method.
func (m *MockItemRepositoryInterface) ListByType(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByType", userID, itemType)
	ret0, _ := ret[0].([]models.ItemOption)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByType indicates an expected call of ListByType.
func (mr *MockItemRepositoryInterfaceMockRecorder) ListByType(userID, itemType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByType", reflect.TypeOf((*MockItemRepositoryInterface)(nil).ListByType), userID, itemType)
}

// Update mocks base method.
func (m *MockItemRepositoryInterface) Update(item *models.Item) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockItemRepositoryInterfaceMockRecorder) Update(item any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockItemRepositoryInterface)(nil).Update), item)
}

// MockEntryRepositoryInterface is a mock of EntryRepositoryInterface interface.
type MockEntryRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockEntryRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockEntryRepositoryInterfaceMockRecorder is the mock recorder for MockEntryRepositoryInterface.
type MockEntryRepositoryInterfaceMockRecorder struct {
	mock *MockEntryRepositoryInterface
}

// NewMockEntryRepositoryInterface creates a new mock instance.
func NewMockEntryRepositoryInterface(ctrl *gomock.Controller) *MockEntryRepositoryInterface {
	mock := &MockEntryRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockEntryRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEntryRepositoryInterface) EXPECT() *MockEntryRepositoryInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockEntryRepositoryInterface) Create(entry *models.Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockEntryRepositoryInterfaceMockRecorder) Create(entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).Create), entry)
}

// Delete mocks base method.
func (m *MockEntryRepositoryInterface) Delete(userID uuid.UUID, kind models.EntryKind, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", userID, kind, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockEntryRepositoryInterfaceMockRecorder) Delete(userID, kind, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).Delete), userID, kind, id)
}

// GetByID mocks base method.
func (m *MockEntryRepositoryInterface) GetByID(userID uuid.UUID, id int64) (*models.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", userID, id)
	ret0, _ := ret[0].(*models.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockEntryRepositoryInterfaceMockRecorder) GetByID(userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).GetByID), userID, id)
}

// GetPage mocks base method.
func (m *MockEntryRepositoryInterface) GetPage(userID uuid.UUID, kind models.EntryKind, query models.TableQuery) ([]repositories.EntryRow, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPage", userID, kind, query)
	ret0, _ := ret[0].([]repositories.EntryRow)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetPage indicates an expected call of GetPage.
func (mr *MockEntryRepositoryInterfaceMockRecorder) GetPage(userID, kind, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPage", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).GetPage), userID, kind, query)
}

// MonthlyTotals mocks base method.
func (m *MockEntryRepositoryInterface) MonthlyTotals(userID uuid.UUID, rng models.DateRange) ([]models.MonthlyTotal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MonthlyTotals", userID, rng)
	ret0, _ := ret[0].([]models.MonthlyTotal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MonthlyTotals indicates an expected call of MonthlyTotals.
func (mr *MockEntryRepositoryInterfaceMockRecorder) MonthlyTotals(userID, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MonthlyTotals", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).MonthlyTotals), userID, rng)
}

// SumByKind mocks base method.
func (m *MockEntryRepositoryInterface) SumByKind(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) (decimal.Decimal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SumByKind", userID, kind, rng)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SumByKind indicates an expected call of SumByKind.
func (mr *MockEntryRepositoryInterfaceMockRecorder) SumByKind(userID, kind, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SumByKind", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).SumByKind), userID, kind, rng)
}

// TotalsByItem mocks base method.
func (m *MockEntryRepositoryInterface) TotalsByItem(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalsByItem", userID, kind, rng)
	ret0, _ := ret[0].([]models.ChartPoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TotalsByItem indicates an expected call of TotalsByItem.
func (mr *MockEntryRepositoryInterfaceMockRecorder) TotalsByItem(userID, kind, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalsByItem", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).TotalsByItem), userID, kind, rng)
}

// Update mocks base method.
func (m *MockEntryRepositoryInterface) Update(entry *models.Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockEntryRepositoryInterfaceMockRecorder) Update(entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockEntryRepositoryInterface)(nil).Update), entry)
}

// MockAuditLogRepositoryInterface is a mock of AuditLogRepositoryInterface interface.
type MockAuditLogRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuditLogRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockAuditLogRepositoryInterfaceMockRecorder is the mock recorder for MockAuditLogRepositoryInterface.
type MockAuditLogRepositoryInterfaceMockRecorder struct {
	mock *MockAuditLogRepositoryInterface
}

// NewMockAuditLogRepositoryInterface creates a new mock instance.
func NewMockAuditLogRepositoryInterface(ctrl *gomock.Controller) *MockAuditLogRepositoryInterface {
	mock := &MockAuditLogRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockAuditLogRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditLogRepositoryInterface) EXPECT() *MockAuditLogRepositoryInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockAuditLogRepositoryInterface) Create(log *models.AuditLog) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", log)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockAuditLogRepositoryInterfaceMockRecorder) Create(log any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAuditLogRepositoryInterface)(nil).Create), log)
}

// DeleteOlderThan mocks base method.
func (m *MockAuditLogRepositoryInterface) DeleteOlderThan(duration time.Duration) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOlderThan", duration)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteOlderThan indicates an expected call of DeleteOlderThan.
func (mr *MockAuditLogRepositoryInterfaceMockRecorder) DeleteOlderThan(duration any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOlderThan", reflect.TypeOf((*MockAuditLogRepositoryInterface)(nil).DeleteOlderThan), duration)
}

// GetByAction mocks base method.
func (m *MockAuditLogRepositoryInterface) GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByAction", action, offset, limit)
	ret0, _ := ret[0].([]*models.AuditLog)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetByAction indicates an expected call of GetByAction.
func (mr *MockAuditLogRepositoryInterfaceMockRecorder) GetByAction(action, offset, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByAction", reflect.TypeOf((*MockAuditLogRepositoryInterface)(nil).GetByAction), action, offset, limit)
}

// GetByID mocks base method.
func (m *MockAuditLogRepositoryInterface) GetByID(id uuid.UUID) (*models.AuditLog, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", id)
	ret0, _ := ret[0].(*models.AuditLog)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockAuditLogRepositoryInterfaceMockRecorder) GetByID(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockAuditLogRepositoryInterface)(nil).GetByID), id)
}

// GetByUserID mocks base method.
func (m *MockAuditLogRepositoryInterface) GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByUserID", userID, offset, limit)
	ret0, _ := ret[0].([]*models.AuditLog)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetByUserID indicates an expected call of GetByUserID.
func (mr *MockAuditLogRepositoryInterfaceMockRecorder) GetByUserID(userID, offset, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByUserID", reflect.TypeOf((*MockAuditLogRepositoryInterface)(nil).GetByUserID), userID, offset, limit)
}

// MockRefreshTokenRepositoryInterface is a mock of RefreshTokenRepositoryInterface interface.
type MockRefreshTokenRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockRefreshTokenRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockRefreshTokenRepositoryInterfaceMockRecorder is the mock recorder for MockRefreshTokenRepositoryInterface.
type MockRefreshTokenRepositoryInterfaceMockRecorder struct {
	mock *MockRefreshTokenRepositoryInterface
}

// NewMockRefreshTokenRepositoryInterface creates a new mock instance.
func NewMockRefreshTokenRepositoryInterface(ctrl *gomock.Controller) *MockRefreshTokenRepositoryInterface {
	mock := &MockRefreshTokenRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockRefreshTokenRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRefreshTokenRepositoryInterface) EXPECT() *MockRefreshTokenRepositoryInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockRefreshTokenRepositoryInterface) Create(token *models.RefreshToken) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", token)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) Create(token any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).Create), token)
}

// DeleteExpired mocks base method.
func (m *MockRefreshTokenRepositoryInterface) DeleteExpired() (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteExpired")
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteExpired indicates an expected call of DeleteExpired.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) DeleteExpired() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteExpired", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).DeleteExpired))
}

// DeleteRevokedOlderThan mocks base method.
func (m *MockRefreshTokenRepositoryInterface) DeleteRevokedOlderThan(duration time.Duration) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteRevokedOlderThan", duration)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteRevokedOlderThan indicates an expected call of DeleteRevokedOlderThan.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) DeleteRevokedOlderThan(duration any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteRevokedOlderThan", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).DeleteRevokedOlderThan), duration)
}

// GetActiveByUserID mocks base method.
func (m *MockRefreshTokenRepositoryInterface) GetActiveByUserID(userID uuid.UUID) ([]*models.RefreshToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByUserID", userID)
	ret0, _ := ret[0].([]*models.RefreshToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveByUserID indicates an expected call of GetActiveByUserID.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) GetActiveByUserID(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByUserID", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).GetActiveByUserID), userID)
}

// GetByID mocks base method.
func (m *MockRefreshTokenRepositoryInterface) GetByID(id uuid.UUID) (*models.RefreshToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", id)
	ret0, _ := ret[0].(*models.RefreshToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) GetByID(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).GetByID), id)
}

// GetByTokenHash mocks base method.
func (m *MockRefreshTokenRepositoryInterface) GetByTokenHash(tokenHash string) (*models.RefreshToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByTokenHash", tokenHash)
	ret0, _ := ret[0].(*models.RefreshToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByTokenHash indicates an expected call of GetByTokenHash.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) GetByTokenHash(tokenHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByTokenHash", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).GetByTokenHash), tokenHash)
}

// Revoke mocks base method.
func (m *MockRefreshTokenRepositoryInterface) Revoke(tokenID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Revoke", tokenID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Revoke indicates an expected call of Revoke.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) Revoke(tokenID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revoke", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).Revoke), tokenID)
}

// RevokeAllForUser mocks base method.
func (m *MockRefreshTokenRepositoryInterface) RevokeAllForUser(userID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevokeAllForUser", userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RevokeAllForUser indicates an expected call of RevokeAllForUser.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) RevokeAllForUser(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevokeAllForUser", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).RevokeAllForUser), userID)
}

// Update mocks base method.
func (m *MockRefreshTokenRepositoryInterface) Update(token *models.RefreshToken) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", token)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockRefreshTokenRepositoryInterfaceMockRecorder) Update(token any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockRefreshTokenRepositoryInterface)(nil).Update), token)
}

// MockBlacklistedTokenRepositoryInterface is a mock of BlacklistedTokenRepositoryInterface interface.
type MockBlacklistedTokenRepositoryInterface struct {
	ctrl     *gomock.Controller
	recorder *MockBlacklistedTokenRepositoryInterfaceMockRecorder
	isgomock struct{}
}

// MockBlacklistedTokenRepositoryInterfaceMockRecorder is the mock recorder for MockBlacklistedTokenRepositoryInterface.
type MockBlacklistedTokenRepositoryInterfaceMockRecorder struct {
	mock *MockBlacklistedTokenRepositoryInterface
}

// NewMockBlacklistedTokenRepositoryInterface creates a new mock instance.
func NewMockBlacklistedTokenRepositoryInterface(ctrl *gomock.Controller) *MockBlacklistedTokenRepositoryInterface {
	mock := &MockBlacklistedTokenRepositoryInterface{ctrl: ctrl}
	mock.recorder = &MockBlacklistedTokenRepositoryInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBlacklistedTokenRepositoryInterface) EXPECT() *MockBlacklistedTokenRepositoryInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockBlacklistedTokenRepositoryInterface) Create(token *models.BlacklistedToken) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", token)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockBlacklistedTokenRepositoryInterfaceMockRecorder) Create(token any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockBlacklistedTokenRepositoryInterface)(nil).Create), token)
}

// DeleteExpired mocks base method.
func (m *MockBlacklistedTokenRepositoryInterface) DeleteExpired() (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteExpired")
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteExpired indicates an expected call of DeleteExpired.
func (mr *MockBlacklistedTokenRepositoryInterfaceMockRecorder) DeleteExpired() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteExpired", reflect.TypeOf((*MockBlacklistedTokenRepositoryInterface)(nil).DeleteExpired))
}

// GetByJTI mocks base method.
func (m *MockBlacklistedTokenRepositoryInterface) GetByJTI(jti string) (*models.BlacklistedToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByJTI", jti)
	ret0, _ := ret[0].(*models.BlacklistedToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByJTI indicates an expected call of GetByJTI.
func (mr *MockBlacklistedTokenRepositoryInterfaceMockRecorder) GetByJTI(jti any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByJTI", reflect.TypeOf((*MockBlacklistedTokenRepositoryInterface)(nil).GetByJTI), jti)
}
