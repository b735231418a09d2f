package sim

import "github.com/samber/oops"

func unknownKindError(kind string) error {
	return oops.Code("UNKNOWN_ACTOR_KIND").With("kind", kind).Errorf("no configuration for actor kind %q", kind)
}
