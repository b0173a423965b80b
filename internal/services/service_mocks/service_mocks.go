// Code generated by MockGen. DO NOT EDIT.
// Source: internal/services/interfaces.go
//
// Generated by this command:
//
//	mockgen -source=internal/services/interfaces.go -destination=internal/services/service_mocks/service_mocks.go -package=service_mocks
//

// Package service_mocks is a generated GoMock package.
package service_mocks

import (
	dto "fintrack/internal/dto"
	models "fintrack/internal/models"
	repositories "fintrack/internal/repositories"
	reflect "reflect"
	time "time"

	uuid "github.com/google/uuid"
	gomock "github.com/golang/mock/gomock"
)

// MockAuthServiceInterface is a mock of AuthServiceInterface interface.
type MockAuthServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuthServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockAuthServiceInterfaceMockRecorder is the mock recorder for MockAuthServiceInterface.
type MockAuthServiceInterfaceMockRecorder struct {
	mock *MockAuthServiceInterface
}

// NewMockAuthServiceInterface creates a new mock instance.
func NewMockAuthServiceInterface(ctrl *gomock.Controller) *MockAuthServiceInterface {
	mock := &MockAuthServiceInterface{ctrl: ctrl}
	mock.recorder = &MockAuthServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuthServiceInterface) EXPECT() *MockAuthServiceInterfaceMockRecorder {
	return m.recorder
}

// Login mocks base method.
func (m *MockAuthServiceInterface) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Login", req, ipAddress, userAgent)
	ret0, _ := ret[0].(*dto.TokenResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Login indicates an expected call of Login.
func (mr *MockAuthServiceInterfaceMockRecorder) Login(req, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Login", reflect.TypeOf((*MockAuthServiceInterface)(nil).Login), req, ipAddress, userAgent)
}

// Logout mocks base method.
func (m *MockAuthServiceInterface) Logout(accessToken, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Logout", accessToken, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// Logout indicates an expected call of Logout.
func (mr *MockAuthServiceInterfaceMockRecorder) Logout(accessToken, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Logout", reflect.TypeOf((*MockAuthServiceInterface)(nil).Logout), accessToken, ipAddress, userAgent)
}

// RefreshTokens mocks base method.
func (m *MockAuthServiceInterface) RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RefreshTokens", refreshToken, ipAddress, userAgent)
	ret0, _ := ret[0].(*dto.TokenResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RefreshTokens indicates an expected call of RefreshTokens.
func (mr *MockAuthServiceInterfaceMockRecorder) RefreshTokens(refreshToken, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RefreshTokens", reflect.TypeOf((*MockAuthServiceInterface)(nil).RefreshTokens), refreshToken, ipAddress, userAgent)
}

// Register mocks base method.
func (m *MockAuthServiceInterface) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Register", req, ipAddress, userAgent)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Register indicates an expected call of Register.
func (mr *MockAuthServiceInterfaceMockRecorder) Register(req, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Register", reflect.TypeOf((*MockAuthServiceInterface)(nil).Register), req, ipAddress, userAgent)
}

// MockTokenServiceInterface is a mock of TokenServiceInterface interface.
type MockTokenServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockTokenServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockTokenServiceInterfaceMockRecorder is the mock recorder for MockTokenServiceInterface.
type MockTokenServiceInterfaceMockRecorder struct {
	mock *MockTokenServiceInterface
}

// NewMockTokenServiceInterface creates a new mock instance.
func NewMockTokenServiceInterface(ctrl *gomock.Controller) *MockTokenServiceInterface {
	mock := &MockTokenServiceInterface{ctrl: ctrl}
	mock.recorder = &MockTokenServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTokenServiceInterface) EXPECT() *MockTokenServiceInterfaceMockRecorder {
	return m.recorder
}

// ExtractTokenFromHeader mocks base method.
func (m *MockTokenServiceInterface) ExtractTokenFromHeader(authHeader string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExtractTokenFromHeader", authHeader)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExtractTokenFromHeader indicates an expected call of ExtractTokenFromHeader.
func (mr *MockTokenServiceInterfaceMockRecorder) ExtractTokenFromHeader(authHeader any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExtractTokenFromHeader", reflect.TypeOf((*MockTokenServiceInterface)(nil).ExtractTokenFromHeader), authHeader)
}

// GenerateAccessToken mocks base method.
func (m *MockTokenServiceInterface) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GenerateAccessToken", user)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(time.Time)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GenerateAccessToken indicates an expected call of GenerateAccessToken.
func (mr *MockTokenServiceInterfaceMockRecorder) GenerateAccessToken(user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GenerateAccessToken", reflect.TypeOf((*MockTokenServiceInterface)(nil).GenerateAccessToken), user)
}

// GenerateRefreshToken mocks base method.
func (m *MockTokenServiceInterface) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GenerateRefreshToken", userID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(time.Time)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GenerateRefreshToken indicates an expected call of GenerateRefreshToken.
func (mr *MockTokenServiceInterfaceMockRecorder) GenerateRefreshToken(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GenerateRefreshToken", reflect.TypeOf((*MockTokenServiceInterface)(nil).GenerateRefreshToken), userID)
}

// GetJTI mocks base method.
func (m *MockTokenServiceInterface) GetJTI(tokenString string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetJTI", tokenString)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetJTI indicates an expected call of GetJTI.
func (mr *MockTokenServiceInterfaceMockRecorder) GetJTI(tokenString any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetJTI", reflect.TypeOf((*MockTokenServiceInterface)(nil).GetJTI), tokenString)
}

// GetTokenExpiry mocks base method.
func (m *MockTokenServiceInterface) GetTokenExpiry(tokenString string) (time.Time, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTokenExpiry", tokenString)
	ret0, _ := ret[0].(time.Time)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTokenExpiry indicates an expected call of GetTokenExpiry.
func (mr *MockTokenServiceInterfaceMockRecorder) GetTokenExpiry(tokenString any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTokenExpiry", reflect.TypeOf((*MockTokenServiceInterface)(nil).GetTokenExpiry), tokenString)
}

// ValidateAccessToken mocks base method.
func (m *MockTokenServiceInterface) ValidateAccessToken(tokenString string) (*models.CustomClaims, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateAccessToken", tokenString)
	ret0, _ := ret[0].(*models.CustomClaims)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ValidateAccessToken indicates an expected call of ValidateAccessToken.
func (mr *MockTokenServiceInterfaceMockRecorder) ValidateAccessToken(tokenString any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateAccessToken", reflect.TypeOf((*MockTokenServiceInterface)(nil).ValidateAccessToken), tokenString)
}

// ValidateRefreshToken mocks base method.
func (m *MockTokenServiceInterface) ValidateRefreshToken(tokenString string) (*models.CustomClaims, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateRefreshToken", tokenString)
	ret0, _ := ret[0].(*models.CustomClaims)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ValidateRefreshToken indicates an expected call of ValidateRefreshToken.
func (mr *MockTokenServiceInterfaceMockRecorder) ValidateRefreshToken(tokenString any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateRefreshToken", reflect.TypeOf((*MockTokenServiceInterface)(nil).ValidateRefreshToken), tokenString)
}

// MockPasswordServiceInterface is a mock of PasswordServiceInterface interface.
type MockPasswordServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockPasswordServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockPasswordServiceInterfaceMockRecorder is the mock recorder for MockPasswordServiceInterface.
type MockPasswordServiceInterfaceMockRecorder struct {
	mock *MockPasswordServiceInterface
}

// NewMockPasswordServiceInterface creates a new mock instance.
func NewMockPasswordServiceInterface(ctrl *gomock.Controller) *MockPasswordServiceInterface {
	mock := &MockPasswordServiceInterface{ctrl: ctrl}
	mock.recorder = &MockPasswordServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPasswordServiceInterface) EXPECT() *MockPasswordServiceInterfaceMockRecorder {
	return m.recorder
}

// ComparePassword mocks base method.
func (m *MockPasswordServiceInterface) ComparePassword(password, hash string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ComparePassword", password, hash)
	ret0, _ := ret[0].(bool)
	return ret0
}

// ComparePassword indicates an expected call of ComparePassword.
func (mr *MockPasswordServiceInterfaceMockRecorder) ComparePassword(password, hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ComparePassword", reflect.TypeOf((*MockPasswordServiceInterface)(nil).ComparePassword), password, hash)
}

// GenerateSecurePassword mocks base method.
func (m *MockPasswordServiceInterface) GenerateSecurePassword() (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GenerateSecurePassword")
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GenerateSecurePassword indicates an expected call of GenerateSecurePassword.
func (mr *MockPasswordServiceInterfaceMockRecorder) GenerateSecurePassword() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GenerateSecurePassword", reflect.TypeOf((*MockPasswordServiceInterface)(nil).GenerateSecurePassword))
}

// GenerateSecurePasswordWithLength mocks base method.
func (m *MockPasswordServiceInterface) GenerateSecurePasswordWithLength(length int) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GenerateSecurePasswordWithLength", length)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GenerateSecurePasswordWithLength indicates an expected call of GenerateSecurePasswordWithLength.
func (mr *MockPasswordServiceInterfaceMockRecorder) GenerateSecurePasswordWithLength(length any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GenerateSecurePasswordWithLength", reflect.TypeOf((*MockPasswordServiceInterface)(nil).GenerateSecurePasswordWithLength), length)
}

// HashPassword mocks base method.
func (m *MockPasswordServiceInterface) HashPassword(password string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HashPassword", password)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HashPassword indicates an expected call of HashPassword.
func (mr *MockPasswordServiceInterfaceMockRecorder) HashPassword(password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HashPassword", reflect.TypeOf((*MockPasswordServiceInterface)(nil).HashPassword), password)
}

// HashPasswordWithoutValidation mocks base method.
func (m *MockPasswordServiceInterface) HashPasswordWithoutValidation(password string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HashPasswordWithoutValidation", password)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HashPasswordWithoutValidation indicates an expected call of HashPasswordWithoutValidation.
func (mr *MockPasswordServiceInterfaceMockRecorder) HashPasswordWithoutValidation(password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HashPasswordWithoutValidation", reflect.TypeOf((*MockPasswordServiceInterface)(nil).HashPasswordWithoutValidation), password)
}

// PasswordStrength mocks base method.
func (m *MockPasswordServiceInterface) PasswordStrength(password string) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PasswordStrength", password)
	ret0, _ := ret[0].(int)
	return ret0
}

// PasswordStrength indicates an expected call of PasswordStrength.
func (mr *MockPasswordServiceInterfaceMockRecorder) PasswordStrength(password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PasswordStrength", reflect.TypeOf((*MockPasswordServiceInterface)(nil).PasswordStrength), password)
}

// UpdatePassword mocks base method.
func (m *MockPasswordServiceInterface) UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdatePassword", userID, currentPassword, newPassword)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdatePassword indicates an expected call of UpdatePassword.
func (mr *MockPasswordServiceInterfaceMockRecorder) UpdatePassword(userID, currentPassword, newPassword any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdatePassword", reflect.TypeOf((*MockPasswordServiceInterface)(nil).UpdatePassword), userID, currentPassword, newPassword)
}

// ValidatePassword mocks base method.
func (m *MockPasswordServiceInterface) ValidatePassword(password string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidatePassword", password)
	ret0, _ := ret[0].(error)
	return ret0
}

// ValidatePassword indicates an expected call of ValidatePassword.
func (mr *MockPasswordServiceInterfaceMockRecorder) ValidatePassword(password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidatePassword", reflect.TypeOf((*MockPasswordServiceInterface)(nil).ValidatePassword), password)
}

// MockAuditServiceInterface is a mock of AuditServiceInterface interface.
type MockAuditServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuditServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockAuditServiceInterfaceMockRecorder is the mock recorder for MockAuditServiceInterface.
type MockAuditServiceInterfaceMockRecorder struct {
	mock *MockAuditServiceInterface
}

// NewMockAuditServiceInterface creates a new mock instance.
func NewMockAuditServiceInterface(ctrl *gomock.Controller) *MockAuditServiceInterface {
	mock := &MockAuditServiceInterface{ctrl: ctrl}
	mock.recorder = &MockAuditServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditServiceInterface) EXPECT() *MockAuditServiceInterfaceMockRecorder {
	return m.recorder
}

// CreateAuditLog mocks base method.
func (m *MockAuditServiceInterface) CreateAuditLog(log *models.AuditLog) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateAuditLog", log)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateAuditLog indicates an expected call of CreateAuditLog.
func (mr *MockAuditServiceInterfaceMockRecorder) CreateAuditLog(log any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateAuditLog", reflect.TypeOf((*MockAuditServiceInterface)(nil).CreateAuditLog), log)
}

// GetUserActivity mocks base method.
func (m *MockAuditServiceInterface) GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserActivity", userID, offset, limit)
	ret0, _ := ret[0].([]*models.AuditLog)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetUserActivity indicates an expected call of GetUserActivity.
func (mr *MockAuditServiceInterfaceMockRecorder) GetUserActivity(userID, offset, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserActivity", reflect.TypeOf((*MockAuditServiceInterface)(nil).GetUserActivity), userID, offset, limit)
}

// LogEntryMutation mocks base method.
func (m *MockAuditServiceInterface) LogEntryMutation(userID uuid.UUID, action string, kind models.EntryKind, entryID int64, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogEntryMutation", userID, action, kind, entryID, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogEntryMutation indicates an expected call of LogEntryMutation.
func (mr *MockAuditServiceInterfaceMockRecorder) LogEntryMutation(userID, action, kind, entryID, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogEntryMutation", reflect.TypeOf((*MockAuditServiceInterface)(nil).LogEntryMutation), userID, action, kind, entryID, ipAddress, userAgent)
}

// LogItemMutation mocks base method.
func (m *MockAuditServiceInterface) LogItemMutation(userID uuid.UUID, action string, itemID int64, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogItemMutation", userID, action, itemID, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogItemMutation indicates an expected call of LogItemMutation.
func (mr *MockAuditServiceInterfaceMockRecorder) LogItemMutation(userID, action, itemID, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogItemMutation", reflect.TypeOf((*MockAuditServiceInterface)(nil).LogItemMutation), userID, action, itemID, ipAddress, userAgent)
}

// LogLogin mocks base method.
func (m *MockAuditServiceInterface) LogLogin(userID uuid.UUID, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogLogin", userID, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogLogin indicates an expected call of LogLogin.
func (mr *MockAuditServiceInterfaceMockRecorder) LogLogin(userID, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogLogin", reflect.TypeOf((*MockAuditServiceInterface)(nil).LogLogin), userID, ipAddress, userAgent)
}

// LogLogout mocks base method.
func (m *MockAuditServiceInterface) LogLogout(userID uuid.UUID, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogLogout", userID, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogLogout indicates an expected call of LogLogout.
func (mr *MockAuditServiceInterfaceMockRecorder) LogLogout(userID, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogLogout", reflect.TypeOf((*MockAuditServiceInterface)(nil).LogLogout), userID, ipAddress, userAgent)
}

// LogReportViewed mocks base method.
func (m *MockAuditServiceInterface) LogReportViewed(userID uuid.UUID, report, ipAddress, userAgent string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogReportViewed", userID, report, ipAddress, userAgent)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogReportViewed indicates an expected call of LogReportViewed.
func (mr *MockAuditServiceInterfaceMockRecorder) LogReportViewed(userID, report, ipAddress, userAgent any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogReportViewed", reflect.TypeOf((*MockAuditServiceInterface)(nil).LogReportViewed), userID, report, ipAddress, userAgent)
}

// MockItemServiceInterface is a mock of ItemServiceInterface interface.
type MockItemServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockItemServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockItemServiceInterfaceMockRecorder is the mock recorder for MockItemServiceInterface.
type MockItemServiceInterfaceMockRecorder struct {
	mock *MockItemServiceInterface
}

// NewMockItemServiceInterface creates a new mock instance.
func NewMockItemServiceInterface(ctrl *gomock.Controller) *MockItemServiceInterface {
	mock := &MockItemServiceInterface{ctrl: ctrl}
	mock.recorder = &MockItemServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockItemServiceInterface) EXPECT() *MockItemServiceInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockItemServiceInterface) Create(userID uuid.UUID, req *dto.ItemRequest) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", userID, req)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockItemServiceInterfaceMockRecorder) Create(userID, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockItemServiceInterface)(nil).Create), userID, req)
}

// Delete mocks base method.
func (m *MockItemServiceInterface) Delete(userID uuid.UUID, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", userID, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockItemServiceInterfaceMockRecorder) Delete(userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockItemServiceInterface)(nil).Delete), userID, id)
}

// Get mocks base method.
func (m *MockItemServiceInterface) Get(userID uuid.UUID, id int64) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", userID, id)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockItemServiceInterfaceMockRecorder) Get(userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockItemServiceInterface)(nil).Get), userID, id)
}

// Options mocks base method.
func (m *MockItemServiceInterface) Options(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Options", userID, itemType)
	ret0, _ := ret[0].([]models.ItemOption)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Options indicates an expected call of Options.
func (mr *MockItemServiceInterfaceMockRecorder) Options(userID, itemType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Options", reflect.TypeOf((*MockItemServiceInterface)(nil).Options), userID, itemType)
}

// Query mocks base method.
func (m *MockItemServiceInterface) Query(userID uuid.UUID, query *models.TableQuery) (*dto.TableResponse[dto.ItemRow], error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Query", userID, query)
	ret0, _ := ret[0].(*dto.TableResponse[dto.ItemRow])
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Query indicates an expected call of Query.
func (mr *MockItemServiceInterfaceMockRecorder) Query(userID, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Query", reflect.TypeOf((*MockItemServiceInterface)(nil).Query), userID, query)
}

// Update mocks base method.
func (m *MockItemServiceInterface) Update(userID uuid.UUID, id int64, req *dto.ItemRequest) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", userID, id, req)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockItemServiceInterfaceMockRecorder) Update(userID, id, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockItemServiceInterface)(nil).Update), userID, id, req)
}

// MockEntryServiceInterface is a mock of EntryServiceInterface interface.
type MockEntryServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockEntryServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockEntryServiceInterfaceMockRecorder is the mock recorder for MockEntryServiceInterface.
type MockEntryServiceInterfaceMockRecorder struct {
	mock *MockEntryServiceInterface
}

// NewMockEntryServiceInterface creates a new mock instance.
func NewMockEntryServiceInterface(ctrl *gomock.Controller) *MockEntryServiceInterface {
	mock := &MockEntryServiceInterface{ctrl: ctrl}
	mock.recorder = &MockEntryServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEntryServiceInterface) EXPECT() *MockEntryServiceInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockEntryServiceInterface) Create(userID uuid.UUID, kind models.EntryKind, req *dto.EntryRequest) (*models.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", userID, kind, req)
	ret0, _ := ret[0].(*models.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockEntryServiceInterfaceMockRecorder) Create(userID, kind, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockEntryServiceInterface)(nil).Create), userID, kind, req)
}

// Delete mocks base method.
func (m *MockEntryServiceInterface) Delete(userID uuid.UUID, kind models.EntryKind, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", userID, kind, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockEntryServiceInterfaceMockRecorder) Delete(userID, kind, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockEntryServiceInterface)(nil).Delete), userID, kind, id)
}

// Query mocks base method.
func (m *MockEntryServiceInterface) Query(userID uuid.UUID, kind models.EntryKind, query *models.TableQuery) (*dto.TableResponse[repositories.EntryRow], error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Query", userID, kind, query)
	ret0, _ := ret[0].(*dto.TableResponse[repositories.EntryRow])
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Query indicates an expected call of Query.
func (mr *MockEntryServiceInterfaceMockRecorder) Query(userID, kind, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Query", reflect.TypeOf((*MockEntryServiceInterface)(nil).Query), userID, kind, query)
}

// Update mocks base method.
func (m *MockEntryServiceInterface) Update(userID uuid.UUID, kind models.EntryKind, id int64, req *dto.EntryRequest) (*models.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", userID, kind, id, req)
	ret0, _ := ret[0].(*models.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockEntryServiceInterfaceMockRecorder) Update(userID, kind, id, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockEntryServiceInterface)(nil).Update), userID, kind, id, req)
}

// MockReportServiceInterface is a mock of ReportServiceInterface interface.
type MockReportServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockReportServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockReportServiceInterfaceMockRecorder is the mock recorder for MockReportServiceInterface.
type MockReportServiceInterfaceMockRecorder struct {
	mock *MockReportServiceInterface
}

// NewMockReportServiceInterface creates a new mock instance.
func NewMockReportServiceInterface(ctrl *gomock.Controller) *MockReportServiceInterface {
	mock := &MockReportServiceInterface{ctrl: ctrl}
	mock.recorder = &MockReportServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReportServiceInterface) EXPECT() *MockReportServiceInterfaceMockRecorder {
	return m.recorder
}

// Chart mocks base method.
func (m *MockReportServiceInterface) Chart(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Chart", userID, kind, rng)
	ret0, _ := ret[0].([]models.ChartPoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Chart indicates an expected call of Chart.
func (mr *MockReportServiceInterfaceMockRecorder) Chart(userID, kind, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Chart", reflect.TypeOf((*MockReportServiceInterface)(nil).Chart), userID, kind, rng)
}

// Summary mocks base method.
func (m *MockReportServiceInterface) Summary(userID uuid.UUID, rng models.DateRange) (*models.SummaryReport, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Summary", userID, rng)
	ret0, _ := ret[0].(*models.SummaryReport)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Summary indicates an expected call of Summary.
func (mr *MockReportServiceInterfaceMockRecorder) Summary(userID, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Summary", reflect.TypeOf((*MockReportServiceInterface)(nil).Summary), userID, rng)
}

// MockMetricsRecorderInterface is a mock of MetricsRecorderInterface interface.
type MockMetricsRecorderInterface struct {
	ctrl     *gomock.Controller
	recorder *MockMetricsRecorderInterfaceMockRecorder
	isgomock struct{}
}

// MockMetricsRecorderInterfaceMockRecorder is the mock recorder for MockMetricsRecorderInterface.
type MockMetricsRecorderInterfaceMockRecorder struct {
	mock *MockMetricsRecorderInterface
}

// NewMockMetricsRecorderInterface creates a new mock instance.
func NewMockMetricsRecorderInterface(ctrl *gomock.Controller) *MockMetricsRecorderInterface {
	mock := &MockMetricsRecorderInterface{ctrl: ctrl}
	mock.recorder = &MockMetricsRecorderInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMetricsRecorderInterface) EXPECT() *MockMetricsRecorderInterfaceMockRecorder {
	return m.recorder
}

// IncrementCounter mocks base method.
func (m *MockMetricsRecorderInterface) IncrementCounter(name string, tags map[string]string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "IncrementCounter", name, tags)
}

// IncrementCounter indicates an expected call of IncrementCounter.
func (mr *MockMetricsRecorderInterfaceMockRecorder) IncrementCounter(name, tags any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementCounter", reflect.TypeOf((*MockMetricsRecorderInterface)(nil).IncrementCounter), name, tags)
}

// RecordGauge mocks base method.
func (m *MockMetricsRecorderInterface) RecordGauge(name string, value float64, tags map[string]string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecordGauge", name, value, tags)
}

// RecordGauge indicates an expected call of RecordGauge.
func (mr *MockMetricsRecorderInterfaceMockRecorder) RecordGauge(name, value, tags any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordGauge", reflect.TypeOf((*MockMetricsRecorderInterface)(nil).RecordGauge), name, value, tags)
}

// RecordProcessingTime mocks base method.
func (m *MockMetricsRecorderInterface) RecordProcessingTime(name string, duration time.Duration) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecordProcessingTime", name, duration)
}

// RecordProcessingTime indicates an expected call of RecordProcessingTime.
func (mr *MockMetricsRecorderInterfaceMockRecorder) RecordProcessingTime(name, duration any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordProcessingTime", reflect.TypeOf((*MockMetricsRecorderInterface)(nil).RecordProcessingTime), name, duration)
}
