package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Info(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Warn(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Error(msg string, fields ...Field) { m.Called(msg, fields) }

func (m *mockLogger) WithFields(fields ...Field) Logger {
	return m.Called(fields).Get(0).(Logger)
}

func (m *mockLogger) Close() error {
	return m.Called().Error(0)
}

func TestMultiLogger_Delegates(t *testing.T) {
	a, b := &mockLogger{}, &mockLogger{}
	fields := []Field{StringField("k", "v")}

	for _, l := range []*mockLogger{a, b} {
		l.On("Info", "i", fields).Once()
		l.On("Warn", "w", fields).Once()
		l.On("Error", "e", fields).Once()
		l.On("Debug", "d", fields).Once()
	}

	m := NewMultiLogger(a, nil, b)
	m.Info("i", fields...)
	m.Warn("w", fields...)
	m.Error("e", fields...)
	m.Debug("d", fields...)

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}

func TestMultiLogger_Flattens(t *testing.T) {
	a, b, c := &mockLogger{}, &mockLogger{}, &mockLogger{}

	m := NewMultiLogger(a, NewMultiLogger(b, c))

	assert.Len(t, m, 3)
}

func TestMultiLogger_WithFields(t *testing.T) {
	a := &mockLogger{}
	fields := []Field{StringField("case", "c")}
	a.On("WithFields", fields).Return(Nop()).Once()

	derived := NewMultiLogger(a).WithFields(fields...)

	assert.Equal(t, MultiLogger{Nop()}, derived)
	a.AssertExpectations(t)
}

func TestMultiLogger_CloseJoinsErrors(t *testing.T) {
	a, b, c := &mockLogger{}, &mockLogger{}, &mockLogger{}
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	a.On("Close").Return(errA)
	b.On("Close").Return(nil)
	c.On("Close").Return(errC)

	err := NewMultiLogger(a, b, c).Close()

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	b.AssertCalled(t, "Close")
}

func TestMultiLogger_Empty(t *testing.T) {
	m := NewMultiLogger()
	m.Info("nothing")
	assert.NoError(t, m.Close())
}
