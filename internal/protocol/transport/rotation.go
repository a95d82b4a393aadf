package transport

import "transportkeys/internal/domain"

// DeriveTransportKeys derives the ephemeral key set for timePeriod from
// rootKey.
//
// The keys for timePeriod-1 come straight from the root key; the current and
// next periods are reached by rotation. If alice is set, outgoing keys use
// the alice labels and incoming keys the bob labels, and vice versa.
func (c *Crypto) DeriveTransportKeys(
	t domain.TransportID,
	rootKey domain.SecretKey,
	timePeriod int64,
	alice bool,
	active bool,
) domain.TransportKeys {
	// Previous period, from the root key.
	inTagPrev := c.deriveTagKey(rootKey, t, !alice)
	inHeaderPrev := c.deriveHeaderKey(rootKey, t, !alice)
	outTagPrev := c.deriveTagKey(rootKey, t, alice)
	outHeaderPrev := c.deriveHeaderKey(rootKey, t, alice)

	// Current and next periods, by rotation.
	inTagCurr := c.rotateKey(inTagPrev, timePeriod)
	inHeaderCurr := c.rotateKey(inHeaderPrev, timePeriod)
	inTagNext := c.rotateKey(inTagCurr, timePeriod+1)
	inHeaderNext := c.rotateKey(inHeaderCurr, timePeriod+1)
	outTagCurr := c.rotateKey(outTagPrev, timePeriod)
	outHeaderCurr := c.rotateKey(outHeaderPrev, timePeriod)

	return domain.TransportKeys{
		TransportID:      t,
		PreviousIncoming: domain.IncomingKeys{TagKey: inTagPrev, HeaderKey: inHeaderPrev, TimePeriod: timePeriod - 1},
		CurrentIncoming:  domain.IncomingKeys{TagKey: inTagCurr, HeaderKey: inHeaderCurr, TimePeriod: timePeriod},
		NextIncoming:     domain.IncomingKeys{TagKey: inTagNext, HeaderKey: inHeaderNext, TimePeriod: timePeriod + 1},
		CurrentOutgoing: domain.OutgoingKeys{
			TagKey:     outTagCurr,
			HeaderKey:  outHeaderCurr,
			TimePeriod: timePeriod,
			Active:     active,
		},
	}
}

// RotateTransportKeys advances k one period at a time until its outgoing
// keys are for timePeriod. Keys already at or past timePeriod are returned
// unchanged. The outgoing Active flag is preserved.
func (c *Crypto) RotateTransportKeys(k domain.TransportKeys, timePeriod int64) domain.TransportKeys {
	if k.TimePeriod() >= timePeriod {
		return k
	}
	inPrev := k.PreviousIncoming
	inCurr := k.CurrentIncoming
	inNext := k.NextIncoming
	outCurr := k.CurrentOutgoing

	for p := outCurr.TimePeriod + 1; p <= timePeriod; p++ {
		inPrev = inCurr
		inCurr = inNext
		inNext = domain.IncomingKeys{
			TagKey:     c.rotateKey(inNext.TagKey, p+1),
			HeaderKey:  c.rotateKey(inNext.HeaderKey, p+1),
			TimePeriod: p + 1,
		}
		outCurr = domain.OutgoingKeys{
			TagKey:     c.rotateKey(outCurr.TagKey, p),
			HeaderKey:  c.rotateKey(outCurr.HeaderKey, p),
			TimePeriod: p,
			Active:     outCurr.Active,
		}
	}
	return domain.TransportKeys{
		TransportID:      k.TransportID,
		PreviousIncoming: inPrev,
		CurrentIncoming:  inCurr,
		NextIncoming:     inNext,
		CurrentOutgoing:  outCurr,
	}
}
