// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/estately/ui-client/internal/ports (interfaces: ChangeFeed)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=change_feed_mock.go github.com/estately/ui-client/internal/ports ChangeFeed
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	ports "github.com/estately/ui-client/internal/ports"
	gomock "go.uber.org/mock/gomock"
)

// MockChangeFeed is a mock of ChangeFeed interface.
type MockChangeFeed struct {
	ctrl     *gomock.Controller
	recorder *MockChangeFeedMockRecorder
}

// MockChangeFeedMockRecorder is the mock recorder for MockChangeFeed.
type MockChangeFeedMockRecorder struct {
	mock *MockChangeFeed
}

// NewMockChangeFeed creates a new mock instance.
func NewMockChangeFeed(ctrl *gomock.Controller) *MockChangeFeed {
	mock := &MockChangeFeed{ctrl: ctrl}
	mock.recorder = &MockChangeFeedMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChangeFeed) EXPECT() *MockChangeFeedMockRecorder {
	return m.recorder
}

// Changes mocks base method.
func (m *MockChangeFeed) Changes(arg0 context.Context) (<-chan ports.Change, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Changes", arg0)
	ret0, _ := ret[0].(<-chan ports.Change)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Changes indicates an expected call of Changes.
func (mr *MockChangeFeedMockRecorder) Changes(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Changes", reflect.TypeOf((*MockChangeFeed)(nil).Changes), arg0)
}
