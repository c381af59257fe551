package command

import (
	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/profile"
)

// EngineView is the slice of the scoring engine the chat commands read.
type EngineView interface {
	Status() (status, message string)
	PointEstimate() float64
	FactorView(n int) []compat.FactorStatus
}

// ObserverView is the slice of the observer the chat commands read.
type ObserverView interface {
	Summary() string
}

// ProfileLister lists stored personas.
type ProfileLister interface {
	List() ([]profile.Profile, error)
}

func NewCommands(
	cfg core.ProviderConfig,
	state core.GlobalState,
	persona string,
	engine EngineView,
	observer ObserverView,
	profiles ProfileLister,
	sampleSize int,
) []core.Command {
	return []core.Command{
		NewModelCommand(cfg, state),
		NewStatusCommand(persona, engine),
		NewFactorsCommand(persona, engine, sampleSize),
		NewObservedCommand(observer),
		NewProfilesCommand(profiles),
	}
}
