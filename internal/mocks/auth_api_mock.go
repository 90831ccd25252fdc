// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/estately/ui-client/internal/ports (interfaces: AuthAPI)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=auth_api_mock.go github.com/estately/ui-client/internal/ports AuthAPI
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	ports "github.com/estately/ui-client/internal/ports"
	gomock "go.uber.org/mock/gomock"
)

// MockAuthAPI is a mock of AuthAPI interface.
type MockAuthAPI struct {
	ctrl     *gomock.Controller
	recorder *MockAuthAPIMockRecorder
}

// MockAuthAPIMockRecorder is the mock recorder for MockAuthAPI.
type MockAuthAPIMockRecorder struct {
	mock *MockAuthAPI
}

// NewMockAuthAPI creates a new mock instance.
func NewMockAuthAPI(ctrl *gomock.Controller) *MockAuthAPI {
	mock := &MockAuthAPI{ctrl: ctrl}
	mock.recorder = &MockAuthAPIMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuthAPI) EXPECT() *MockAuthAPIMockRecorder {
	return m.recorder
}

// Login mocks base method.
func (m *MockAuthAPI) Login(arg0 context.Context, arg1 ports.LoginInput) (ports.LoginOutcome, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Login", arg0, arg1)
	ret0, _ := ret[0].(ports.LoginOutcome)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Login indicates an expected call of Login.
func (mr *MockAuthAPIMockRecorder) Login(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Login", reflect.TypeOf((*MockAuthAPI)(nil).Login), arg0, arg1)
}

// Revoke mocks base method.
func (m *MockAuthAPI) Revoke(arg0 context.Context, arg1 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Revoke", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Revoke indicates an expected call of Revoke.
func (mr *MockAuthAPIMockRecorder) Revoke(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revoke", reflect.TypeOf((*MockAuthAPI)(nil).Revoke), arg0, arg1)
}
