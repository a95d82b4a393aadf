package transport

import (
	"fmt"

	"transportkeys/internal/domain"
)

// DeriveStaticTransportKeys derives the static key set for timePeriod. Every
// key is computed directly from rootKey and its period number. Outgoing keys
// are always active.
func (c *Crypto) DeriveStaticTransportKeys(
	t domain.TransportID,
	rootKey domain.SecretKey,
	alice bool,
	timePeriod int64,
) (domain.StaticTransportKeys, error) {
	if timePeriod < 1 {
		return domain.StaticTransportKeys{}, fmt.Errorf("%w: time period %d < 1", ErrInvalidArgument, timePeriod)
	}
	return domain.StaticTransportKeys{
		TransportKeys: domain.TransportKeys{
			TransportID:      t,
			PreviousIncoming: c.deriveStaticIncomingKeys(t, rootKey, alice, timePeriod-1),
			CurrentIncoming:  c.deriveStaticIncomingKeys(t, rootKey, alice, timePeriod),
			NextIncoming:     c.deriveStaticIncomingKeys(t, rootKey, alice, timePeriod+1),
			CurrentOutgoing:  c.deriveStaticOutgoingKeys(t, rootKey, alice, timePeriod),
		},
		RootKey: rootKey,
		Alice:   alice,
	}, nil
}

// UpdateTransportKeys brings static keys forward to timePeriod, reusing the
// incoming keys that are still inside the window.
func (c *Crypto) UpdateTransportKeys(k domain.StaticTransportKeys, timePeriod int64) (domain.StaticTransportKeys, error) {
	elapsed := timePeriod - k.TimePeriod()
	t, rootKey, alice := k.TransportID, k.RootKey, k.Alice

	var inPrev, inCurr domain.IncomingKeys
	switch {
	case elapsed <= 0:
		return k, nil
	case elapsed == 1:
		inPrev = k.CurrentIncoming
		inCurr = k.NextIncoming
	case elapsed == 2:
		inPrev = k.NextIncoming
		inCurr = c.deriveStaticIncomingKeys(t, rootKey, alice, timePeriod)
	default:
		return c.DeriveStaticTransportKeys(t, rootKey, alice, timePeriod)
	}
	return domain.StaticTransportKeys{
		TransportKeys: domain.TransportKeys{
			TransportID:      t,
			PreviousIncoming: inPrev,
			CurrentIncoming:  inCurr,
			NextIncoming:     c.deriveStaticIncomingKeys(t, rootKey, alice, timePeriod+1),
			CurrentOutgoing:  c.deriveStaticOutgoingKeys(t, rootKey, alice, timePeriod),
		},
		RootKey: rootKey,
		Alice:   alice,
	}, nil
}

func (c *Crypto) deriveStaticIncomingKeys(t domain.TransportID, rootKey domain.SecretKey, alice bool, timePeriod int64) domain.IncomingKeys {
	return domain.IncomingKeys{
		TagKey:     c.deriveStaticTagKey(rootKey, t, !alice, timePeriod),
		HeaderKey:  c.deriveStaticHeaderKey(rootKey, t, !alice, timePeriod),
		TimePeriod: timePeriod,
	}
}

func (c *Crypto) deriveStaticOutgoingKeys(t domain.TransportID, rootKey domain.SecretKey, alice bool, timePeriod int64) domain.OutgoingKeys {
	return domain.OutgoingKeys{
		TagKey:     c.deriveStaticTagKey(rootKey, t, alice, timePeriod),
		HeaderKey:  c.deriveStaticHeaderKey(rootKey, t, alice, timePeriod),
		TimePeriod: timePeriod,
		Active:     true,
	}
}
