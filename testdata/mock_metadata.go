package testdata

import (
	"reflect"
)

import (
	"github.com/golang/mock/gomock"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
)

// MockDatabase is a mock of Database interface.
type MockDatabase struct {
	ctrl     *gomock.Controller
	recorder *MockDatabaseMockRecorder
}

// MockDatabaseMockRecorder is the mock recorder for MockDatabase.
type MockDatabaseMockRecorder struct {
	mock *MockDatabase
}

// NewMockDatabase creates a new mock instance.
func NewMockDatabase(ctrl *gomock.Controller) *MockDatabase {
	mock := &MockDatabase{ctrl: ctrl}
	mock.recorder = &MockDatabaseMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDatabase) EXPECT() *MockDatabaseMockRecorder {
	return m.recorder
}

// Name mocks base method.
func (m *MockDatabase) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

// Name indicates an expected call of Name.
func (mr *MockDatabaseMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockDatabase)(nil).Name))
}

// Schema mocks base method.
func (m *MockDatabase) Schema(arg0 proto.Identifier) (proto.Schema, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Schema", arg0)
	ret0, _ := ret[0].(proto.Schema)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Schema indicates an expected call of Schema.
func (mr *MockDatabaseMockRecorder) Schema(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Schema", reflect.TypeOf((*MockDatabase)(nil).Schema), arg0)
}

// Type mocks base method.
func (m *MockDatabase) Type() proto.DatabaseType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Type")
	ret0, _ := ret[0].(proto.DatabaseType)
	return ret0
}

// Type indicates an expected call of Type.
func (mr *MockDatabaseMockRecorder) Type() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Type", reflect.TypeOf((*MockDatabase)(nil).Type))
}

// MockSchema is a mock of Schema interface.
type MockSchema struct {
	ctrl     *gomock.Controller
	recorder *MockSchemaMockRecorder
}

// MockSchemaMockRecorder is the mock recorder for MockSchema.
type MockSchemaMockRecorder struct {
	mock *MockSchema
}

// NewMockSchema creates a new mock instance.
func NewMockSchema(ctrl *gomock.Controller) *MockSchema {
	mock := &MockSchema{ctrl: ctrl}
	mock.recorder = &MockSchemaMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSchema) EXPECT() *MockSchemaMockRecorder {
	return m.recorder
}

// AllTableNames mocks base method.
func (m *MockSchema) AllTableNames() []string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllTableNames")
	ret0, _ := ret[0].([]string)
	return ret0
}

// AllTableNames indicates an expected call of AllTableNames.
func (mr *MockSchemaMockRecorder) AllTableNames() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllTableNames", reflect.TypeOf((*MockSchema)(nil).AllTableNames))
}

// Name mocks base method.
func (m *MockSchema) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

// Name indicates an expected call of Name.
func (mr *MockSchemaMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockSchema)(nil).Name))
}

// Table mocks base method.
func (m *MockSchema) Table(arg0 string) (*proto.TableMetadata, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Table", arg0)
	ret0, _ := ret[0].(*proto.TableMetadata)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Table indicates an expected call of Table.
func (mr *MockSchemaMockRecorder) Table(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Table", reflect.TypeOf((*MockSchema)(nil).Table), arg0)
}
