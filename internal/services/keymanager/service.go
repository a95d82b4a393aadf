package keymanager

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
	"transportkeys/internal/observability"
	"transportkeys/internal/protocol/transport"
	"transportkeys/internal/util/memzero"
)

// DefaultPeriodLength is the duration of one time period.
const DefaultPeriodLength = 24 * time.Hour

var (
	// ErrUnknownContact is returned when no key set exists for a contact
	// and transport.
	ErrUnknownContact = errors.New("no key set for contact")

	// ErrUnknownKeySet is returned for an id the manager does not hold.
	ErrUnknownKeySet = errors.New("unknown key set")

	// ErrInactive is returned when a contact has key sets but none may be
	// used to send yet.
	ErrInactive = errors.New("outgoing keys are not active")

	// ErrStreamsExhausted is returned when every stream number of the
	// current outgoing period has been used.
	ErrStreamsExhausted = errors.New("outgoing stream numbers exhausted for this period")
)

type tagIndexKey struct {
	transport domain.TransportID
	tag       [transport.TagLength]byte
}

type expectedTag struct {
	keySetID     domain.KeySetID
	keys         domain.IncomingKeys
	streamNumber uint64
}

// Service manages key sets for all contacts and transports.
//
// The zero value is not usable; construct with New.
type Service struct {
	crypto          *transport.Crypto
	store           domain.KeySetStore
	log             *observability.Logger
	metrics         *observability.Metrics
	now             func() time.Time
	periodLength    time.Duration
	protocolVersion int

	mu      sync.Mutex
	keySets map[domain.KeySetID]*domain.KeySet
	tags    map[tagIndexKey]expectedTag
	indexed map[domain.KeySetID][]tagIndexKey
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPeriodLength sets the duration of one time period.
func WithPeriodLength(d time.Duration) Option {
	return func(s *Service) { s.periodLength = d }
}

// WithLogger sets the logger.
func WithLogger(l *observability.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithProtocolVersion sets the version encoded into tags.
func WithProtocolVersion(v int) Option {
	return func(s *Service) { s.protocolVersion = v }
}

// New constructs a key manager on top of c and store.
func New(c *transport.Crypto, store domain.KeySetStore, opts ...Option) *Service {
	s := &Service{
		crypto:          c,
		store:           store,
		log:             observability.Nop(),
		now:             time.Now,
		periodLength:    DefaultPeriodLength,
		protocolVersion: transport.ProtocolVersion,
		keySets:         make(map[domain.KeySetID]*domain.KeySet),
		tags:            make(map[tagIndexKey]expectedTag),
		indexed:         make(map[domain.KeySetID][]tagIndexKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	// Periods are counted in whole milliseconds.
	if s.periodLength < time.Millisecond {
		s.periodLength = time.Millisecond
	}
	return s
}

// CurrentTimePeriod returns the index of the period containing now.
func (s *Service) CurrentTimePeriod() int64 {
	return s.now().UnixMilli() / s.periodLength.Milliseconds()
}

// Load reads every key set from the store, rotates it to the current
// period and indexes its incoming tags. A key set that cannot be rotated,
// saved or indexed is left out and its error returned; the others are
// still loaded.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.LoadKeySets()
	s.metrics.RecordStoreOperation("load", err)
	if err != nil {
		return fmt.Errorf("load key sets: %w", err)
	}
	period := s.CurrentTimePeriod()
	var (
		errs   []error
		loaded int
	)
	for i := range all {
		ks := all[i]
		if ks.Windows == nil {
			ks.Windows = make(map[int64]domain.ReorderingWindow)
		}
		rotated, err := s.rotateLocked(&ks, period)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if rotated {
			if err := s.saveLocked(&ks); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		if err := s.indexLocked(&ks); err != nil {
			s.unindexLocked(ks.ID)
			errs = append(errs, err)
			continue
		}
		s.keySets[ks.ID] = &ks
		loaded++
	}
	s.updateGaugesLocked()
	s.log.Info(fmt.Sprintf("loaded %d of %d key sets at period %d", loaded, len(all), period))
	return errors.Join(errs...)
}

// AddContact derives ephemeral keys for contact on transport t at the
// current period and stores them.
func (s *Service) AddContact(
	contact domain.ContactID,
	t domain.TransportID,
	rootKey domain.SecretKey,
	alice bool,
	active bool,
) (domain.KeySetID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.crypto.DeriveTransportKeys(t, rootKey, s.CurrentTimePeriod(), alice, active)
	return s.addLocked(domain.KeySet{
		ContactID:   contact,
		TransportID: t,
		Keys:        &keys,
	})
}

// AddStaticContact derives static keys for contact on transport t at the
// current period and stores them.
func (s *Service) AddStaticContact(
	contact domain.ContactID,
	t domain.TransportID,
	rootKey domain.SecretKey,
	alice bool,
) (domain.KeySetID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.crypto.DeriveStaticTransportKeys(t, rootKey, alice, s.CurrentTimePeriod())
	if err != nil {
		return "", err
	}
	return s.addLocked(domain.KeySet{
		ContactID:   contact,
		TransportID: t,
		Static:      true,
		StaticKeys:  &keys,
	})
}

func (s *Service) addLocked(ks domain.KeySet) (domain.KeySetID, error) {
	ks.ID = domain.KeySetID(uuid.NewString())
	ks.Windows = make(map[int64]domain.ReorderingWindow)
	if err := s.saveLocked(&ks); err != nil {
		return "", err
	}
	s.keySets[ks.ID] = &ks
	if err := s.indexLocked(&ks); err != nil {
		return "", err
	}
	s.updateGaugesLocked()

	w := ks.Window()
	s.log.WithContact(ks.ContactID.String()).
		WithTransport(ks.TransportID.String()).
		KeySetAdded(ks.ID.String(), ks.Static, w.TimePeriod(), crypto.KeyFingerprint(w.CurrentOutgoing.TagKey))
	return ks.ID, nil
}

// ActivateKeys allows the outgoing keys of key set id to be used.
func (s *Service) ActivateKeys(id domain.KeySetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ks, ok := s.keySets[id]
	if !ok {
		return ErrUnknownKeySet
	}
	if outgoing(ks).Active {
		return nil
	}
	setActive(ks)
	return s.saveLocked(ks)
}

// RemoveContact deletes every key set of contact.
func (s *Service) RemoveContact(contact domain.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, ks := range s.keySets {
		if ks.ContactID != contact {
			continue
		}
		err := s.store.RemoveKeySet(id)
		s.metrics.RecordStoreOperation("remove", err)
		if err != nil {
			return fmt.Errorf("remove key set %s: %w", id, err)
		}
		s.unindexLocked(id)
		delete(s.keySets, id)
		wipe(ks)
		removed++
	}
	if removed == 0 {
		return ErrUnknownContact
	}
	s.updateGaugesLocked()
	return nil
}

// GetStreamContext allocates the next outgoing stream to contact on
// transport t and returns its keys and tag. When several active key sets
// match, the one with the latest outgoing period is used, then the most
// recently updated, then the lowest id.
func (s *Service) GetStreamContext(contact domain.ContactID, t domain.TransportID) (domain.StreamContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found bool
		ks    *domain.KeySet
	)
	for _, id := range s.sortedIDsLocked() {
		cand := s.keySets[id]
		if cand.ContactID != contact || cand.TransportID != t {
			continue
		}
		found = true
		if outgoing(cand).Active && (ks == nil || newer(cand, ks)) {
			ks = cand
		}
	}
	if !found {
		return domain.StreamContext{}, ErrUnknownContact
	}
	if ks == nil {
		return domain.StreamContext{}, ErrInactive
	}

	rotated, err := s.rotateLocked(ks, s.CurrentTimePeriod())
	if err != nil {
		return domain.StreamContext{}, err
	}
	if rotated {
		if err := s.indexLocked(ks); err != nil {
			return domain.StreamContext{}, err
		}
	}
	if ks.OutgoingStreamCounter > transport.MaxStreamNumber {
		return domain.StreamContext{}, ErrStreamsExhausted
	}

	out := outgoing(ks)
	stream := ks.OutgoingStreamCounter
	tag := make([]byte, transport.TagLength)
	if err := s.crypto.EncodeTag(tag, out.TagKey, s.protocolVersion, int64(stream)); err != nil {
		return domain.StreamContext{}, err
	}
	ks.OutgoingStreamCounter++
	if err := s.saveLocked(ks); err != nil {
		ks.OutgoingStreamCounter--
		return domain.StreamContext{}, err
	}

	s.metrics.StreamsOpenedTotal.Inc()
	s.log.WithContact(contact.String()).WithTransport(t.String()).StreamOpened(ks.ID.String(), out.TimePeriod, stream)
	return domain.StreamContext{
		KeySetID:     ks.ID,
		ContactID:    ks.ContactID,
		TransportID:  ks.TransportID,
		TagKey:       out.TagKey,
		HeaderKey:    out.HeaderKey,
		StreamNumber: stream,
		TimePeriod:   out.TimePeriod,
		Tag:          tag,
	}, nil
}

// RecognizeTag looks up an incoming tag. If it belongs to a key set, the
// stream is marked as seen and the matching incoming keys are returned.
func (s *Service) RecognizeTag(t domain.TransportID, tag []byte) (domain.StreamContext, bool, error) {
	if len(tag) != transport.TagLength {
		return domain.StreamContext{}, false, fmt.Errorf("%w: tag is %d bytes, want %d", transport.ErrInvalidArgument, len(tag), transport.TagLength)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tagIndexKey{transport: t}
	copy(key.tag[:], tag)
	exp, ok := s.tags[key]
	if !ok {
		s.metrics.TagsUnrecognisedTotal.Inc()
		return domain.StreamContext{}, false, nil
	}
	ks := s.keySets[exp.keySetID]

	period := exp.keys.TimePeriod
	w, err := markSeen(ks.Windows[period], exp.streamNumber)
	if err != nil {
		return domain.StreamContext{}, false, err
	}
	ks.Windows[period] = w
	if !outgoing(ks).Active {
		setActive(ks)
	}
	if err := s.saveLocked(ks); err != nil {
		return domain.StreamContext{}, false, err
	}
	if err := s.indexLocked(ks); err != nil {
		return domain.StreamContext{}, false, err
	}

	s.metrics.TagsRecognisedTotal.Inc()
	s.log.WithContact(ks.ContactID.String()).WithTransport(t.String()).TagRecognised(ks.ID.String(), period, exp.streamNumber)
	return domain.StreamContext{
		KeySetID:     ks.ID,
		ContactID:    ks.ContactID,
		TransportID:  ks.TransportID,
		TagKey:       exp.keys.TagKey,
		HeaderKey:    exp.keys.HeaderKey,
		StreamNumber: exp.streamNumber,
		TimePeriod:   period,
		Tag:          append([]byte(nil), tag...),
	}, true, nil
}

// RotateAll brings every key set forward to the current period.
func (s *Service) RotateAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	period := s.CurrentTimePeriod()
	var errs []error
	for _, id := range s.sortedIDsLocked() {
		ks := s.keySets[id]
		rotated, err := s.rotateLocked(ks, period)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !rotated {
			continue
		}
		if err := s.saveLocked(ks); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.indexLocked(ks); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// KeySets returns a snapshot of all key sets ordered by id.
func (s *Service) KeySets() []domain.KeySet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.KeySet, 0, len(s.keySets))
	for _, id := range s.sortedIDsLocked() {
		out = append(out, clone(*s.keySets[id]))
	}
	return out
}

// rotateLocked moves ks to period. It reports whether anything changed.
func (s *Service) rotateLocked(ks *domain.KeySet, period int64) (bool, error) {
	from := ks.Window().TimePeriod()
	if period <= from {
		return false, nil
	}
	if ks.Static {
		keys, err := s.crypto.UpdateTransportKeys(*ks.StaticKeys, period)
		if err != nil {
			return false, fmt.Errorf("update key set %s: %w", ks.ID, err)
		}
		ks.StaticKeys = &keys
	} else {
		keys := s.crypto.RotateTransportKeys(*ks.Keys, period)
		ks.Keys = &keys
	}
	ks.OutgoingStreamCounter = 0

	// Windows follow their period; periods that left the window are dropped.
	w := ks.Window()
	windows := make(map[int64]domain.ReorderingWindow, 3)
	for _, in := range w.Incoming() {
		if win, ok := ks.Windows[in.TimePeriod]; ok {
			windows[in.TimePeriod] = win
		}
	}
	ks.Windows = windows

	s.metrics.RecordRotation(ks.Static, period-from)
	s.log.WithContact(ks.ContactID.String()).WithTransport(ks.TransportID.String()).KeysRotated(ks.ID.String(), ks.Static, from, period)
	return true, nil
}

// indexLocked replaces the expected tags of ks in the tag index.
func (s *Service) indexLocked(ks *domain.KeySet) error {
	s.unindexLocked(ks.ID)
	for _, in := range ks.Window().Incoming() {
		for _, stream := range unseen(ks.Windows[in.TimePeriod]) {
			key := tagIndexKey{transport: ks.TransportID}
			if err := s.crypto.EncodeTag(key.tag[:], in.TagKey, s.protocolVersion, int64(stream)); err != nil {
				return err
			}
			s.tags[key] = expectedTag{keySetID: ks.ID, keys: in, streamNumber: stream}
			s.indexed[ks.ID] = append(s.indexed[ks.ID], key)
		}
	}
	return nil
}

func (s *Service) unindexLocked(id domain.KeySetID) {
	for _, key := range s.indexed[id] {
		if exp, ok := s.tags[key]; ok && exp.keySetID == id {
			delete(s.tags, key)
		}
	}
	delete(s.indexed, id)
}

func (s *Service) saveLocked(ks *domain.KeySet) error {
	ks.UpdatedUTC = s.now().Unix()
	err := s.store.SaveKeySet(clone(*ks))
	s.metrics.RecordStoreOperation("save", err)
	if err != nil {
		return fmt.Errorf("save key set %s: %w", ks.ID, err)
	}
	return nil
}

func (s *Service) sortedIDsLocked() []domain.KeySetID {
	ids := make([]domain.KeySetID, 0, len(s.keySets))
	for id := range s.keySets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Service) updateGaugesLocked() {
	var ephemeral, static int
	for _, ks := range s.keySets {
		if ks.Static {
			static++
		} else {
			ephemeral++
		}
	}
	s.metrics.SetKeySets(ephemeral, static)
}

// newer reports whether a should be preferred over b for sending: the later
// outgoing period wins, then the more recent update.
func newer(a, b *domain.KeySet) bool {
	pa, pb := a.Window().TimePeriod(), b.Window().TimePeriod()
	if pa != pb {
		return pa > pb
	}
	return a.UpdatedUTC > b.UpdatedUTC
}

func outgoing(ks *domain.KeySet) domain.OutgoingKeys {
	return ks.Window().CurrentOutgoing
}

// setActive replaces the keys of ks with a copy whose outgoing keys are active.
func setActive(ks *domain.KeySet) {
	if ks.Static {
		keys := *ks.StaticKeys
		keys.CurrentOutgoing.Active = true
		ks.StaticKeys = &keys
		return
	}
	keys := *ks.Keys
	keys.CurrentOutgoing.Active = true
	ks.Keys = &keys
}

func clone(ks domain.KeySet) domain.KeySet {
	if ks.Keys != nil {
		keys := *ks.Keys
		ks.Keys = &keys
	}
	if ks.StaticKeys != nil {
		keys := *ks.StaticKeys
		ks.StaticKeys = &keys
	}
	windows := make(map[int64]domain.ReorderingWindow, len(ks.Windows))
	for p, w := range ks.Windows {
		windows[p] = w
	}
	ks.Windows = windows
	return ks
}

func wipe(ks *domain.KeySet) {
	var w *domain.TransportKeys
	if ks.Static && ks.StaticKeys != nil {
		memzero.Keys((*[32]byte)(&ks.StaticKeys.RootKey))
		w = &ks.StaticKeys.TransportKeys
	} else if ks.Keys != nil {
		w = ks.Keys
	}
	if w == nil {
		return
	}
	memzero.Keys(
		(*[32]byte)(&w.PreviousIncoming.TagKey), (*[32]byte)(&w.PreviousIncoming.HeaderKey),
		(*[32]byte)(&w.CurrentIncoming.TagKey), (*[32]byte)(&w.CurrentIncoming.HeaderKey),
		(*[32]byte)(&w.NextIncoming.TagKey), (*[32]byte)(&w.NextIncoming.HeaderKey),
		(*[32]byte)(&w.CurrentOutgoing.TagKey), (*[32]byte)(&w.CurrentOutgoing.HeaderKey),
	)
}

// Compile-time assertion that Service implements domain.KeyManager.
var _ domain.KeyManager = (*Service)(nil)
