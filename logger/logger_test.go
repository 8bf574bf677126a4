package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger("debug")
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
	suite.True(logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestParseLevel() {
	suite.Equal(zapcore.WarnLevel, ParseLevel("warn"))
	suite.Equal(zapcore.ErrorLevel, ParseLevel("error"))
	suite.Equal(zapcore.InfoLevel, ParseLevel("loud"))
	suite.Equal(zapcore.InfoLevel, ParseLevel(""))
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNamedAndNop() {
	logger := NewNop().Named("loader")
	suite.NotNil(logger.Logger)

	// should not panic
	logger.Info("test info message")
	logger.Error("test error message")
}

func (suite *LoggerTestSuite) TestWith() {
	logger, err := NewLogger("warn")
	suite.Require().NoError(err)

	child := logger.With(zap.String("cycle", "abc"))
	suite.NotNil(child.Logger)
	suite.False(child.Core().Enabled(zapcore.InfoLevel))
}
