package protocol

import (
	"sync"

	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/samber/oops"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetActor      uint = 10
	SyncIDNetHazard     uint = 11
	SyncIDNetLevelState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetActor  uint8 = 10
	InterpIDNetHazard uint8 = 11
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
// Later calls return the result of the first.
func RegisterComponents() error {
	registerOnce.Do(func() {
		registerErr = register()
	})
	return registerErr
}

func register() error {
	// Register with interpolation for smooth client-side rendering
	if err := esync.RegisterComponent(
		SyncIDNetActor,
		netcomponents.NetActorData{},
		netcomponents.NetActor,
		esync.WithInterpFn(InterpIDNetActor, netcomponents.LerpNetActor),
	); err != nil {
		return oops.Code("SYNC_REGISTER_FAILED").With("component", "NetActor").Wrap(err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetHazard,
		netcomponents.NetHazardData{},
		netcomponents.NetHazard,
		esync.WithInterpFn(InterpIDNetHazard, netcomponents.LerpNetHazard),
	); err != nil {
		return oops.Code("SYNC_REGISTER_FAILED").With("component", "NetHazard").Wrap(err)
	}

	// LevelState: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetLevelState,
		netcomponents.NetLevelStateData{},
		netcomponents.NetLevelState,
	); err != nil {
		return oops.Code("SYNC_REGISTER_FAILED").With("component", "NetLevelState").Wrap(err)
	}

	return nil
}
