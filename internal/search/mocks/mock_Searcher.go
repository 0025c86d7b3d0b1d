// Package mocks provides test doubles for the search package.
package mocks

import (
	"context"

	search "github.com/sells-group/painpoint-cli/internal/search"
	mock "github.com/stretchr/testify/mock"
)

// MockSearcher is a mock type for the Searcher interface.
type MockSearcher struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, req
func (_m *MockSearcher) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	var r0 *search.Response
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, search.Request) (*search.Response, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, search.Request) *search.Response); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*search.Response)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, search.Request) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Name returns a fixed provider name so callers can log without an expectation.
func (_m *MockSearcher) Name() string {
	return "mock"
}

// NewMockSearcher creates a new instance of MockSearcher. It also registers
// a cleanup function to assert the mocks expectations.
func NewMockSearcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSearcher {
	m := &MockSearcher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
