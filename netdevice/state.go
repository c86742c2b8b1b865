package netdevice

import (
	"github.com/go-logr/logr"
	"github.com/looplab/fsm"
)

// Setup states shared by both initializers.
const (
	StateUnopened        = "unopened"
	StateHandleAcquired  = "handle-acquired"
	StateConfigured      = "configured"
	StateAddressResolved = "address-resolved"
	StateReady           = "ready"
	StateFailed          = "failed"
)

const (
	eventAcquire   = "acquire"
	eventConfigure = "configure"
	eventResolve   = "resolve"
	eventFinish    = "finish"
	eventFail      = "fail"
)

// setupProgress tracks a single setup call. Ready and Failed are terminal.
type setupProgress struct {
	machine *fsm.FSM
	log     logr.Logger
	failure error
}

func newSetupProgress(log logr.Logger) *setupProgress {
	p := &setupProgress{log: log}

	p.machine = fsm.NewFSM(
		StateUnopened,
		fsm.Events{
			{Name: eventAcquire, Src: []string{StateUnopened}, Dst: StateHandleAcquired},
			{Name: eventConfigure, Src: []string{StateHandleAcquired}, Dst: StateConfigured},
			{Name: eventResolve, Src: []string{StateConfigured}, Dst: StateAddressResolved},
			{Name: eventFinish, Src: []string{StateAddressResolved}, Dst: StateReady},
			{
				Name: eventFail,
				Src:  []string{StateUnopened, StateHandleAcquired, StateConfigured, StateAddressResolved},
				Dst:  StateFailed,
			},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				p.log.V(1).Info("setup state changed", "from", e.Src, "to", e.Dst)
			},
		},
	)

	return p
}

func (p *setupProgress) State() string {
	return p.machine.Current()
}

// Failure returns the error kind that moved the setup to StateFailed.
func (p *setupProgress) Failure() error {
	return p.failure
}

func (p *setupProgress) advance(event string) {
	if err := p.machine.Event(event); err != nil {
		p.log.Error(err, "unexpected setup transition", "event", event, "state", p.machine.Current())
	}
}

// fail records err and moves the setup to StateFailed. err is returned
// unchanged so call sites can write `return nil, p.fail(err)`.
func (p *setupProgress) fail(err error) error {
	p.failure = Kind(err)
	p.advance(eventFail)
	p.log.V(1).Info("setup failed", "kind", p.failure, "error", err.Error())

	return err
}
