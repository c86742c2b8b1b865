package netdevice

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestSetupProgress(t *testing.T) {
	p := newSetupProgress(logr.Discard())
	assert.Equal(t, StateUnopened, p.State())

	p.advance(eventAcquire)
	assert.Equal(t, StateHandleAcquired, p.State())

	p.advance(eventConfigure)
	assert.Equal(t, StateConfigured, p.State())

	p.advance(eventResolve)
	assert.Equal(t, StateAddressResolved, p.State())

	p.advance(eventFinish)
	assert.Equal(t, StateReady, p.State())
	assert.Nil(t, p.Failure())

	// Ready is terminal.
	p.advance(eventFail)
	assert.Equal(t, StateReady, p.State())
}

func TestSetupProgressFail(t *testing.T) {
	for _, events := range [][]string{
		{},
		{eventAcquire},
		{eventAcquire, eventConfigure},
		{eventAcquire, eventConfigure, eventResolve},
	} {
		p := newSetupProgress(logr.Discard())

		for _, event := range events {
			p.advance(event)
		}

		err := p.fail(ErrBindFailed)
		assert.Equal(t, ErrBindFailed, err)
		assert.Equal(t, StateFailed, p.State())
		assert.Equal(t, ErrBindFailed, p.Failure())

		// Failed is terminal.
		p.advance(eventAcquire)
		assert.Equal(t, StateFailed, p.State())
	}
}
