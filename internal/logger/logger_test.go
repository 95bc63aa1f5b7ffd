package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewSetsLevel(t *testing.T) {
	log := New("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	log := New("shout", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewProductionUsesJSON(t *testing.T) {
	log := New("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
