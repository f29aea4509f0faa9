package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/logger"
)

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval time.Duration
}

// CueSink receives stage-entry cues after each tick.
type CueSink interface {
	Dispatch(cue feedback.Cue) bool
}

// Persister stores the session configuration at checkpoints.
type Persister interface {
	Persist(config model.SessionConfig)
}

// Controller is the state machine that drives the episode and speaker timers.
type Controller struct {
	mu           sync.Mutex
	id           string
	options      Config
	episode      *timer.Timer
	speaker      *timer.Timer
	state        State
	audioEnabled bool
	editPending  bool
	sink         CueSink
	persister    Persister
	events       []chan Event
	driver       *driver
	generation   uint64
	closed       bool
}

type driver struct {
	stop chan struct{}
	done chan struct{}
}

// New creates an idle Controller with the provided configuration.
func New(config model.SessionConfig, options Config, sink CueSink) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Controller{
		id:           uuid.NewString(),
		options:      options,
		episode:      timer.New(timer.RoleEpisode, config.Episode.Minutes, config.Episode.Seconds),
		speaker:      timer.New(timer.RoleSpeaker, config.Speaker.Minutes, config.Speaker.Seconds),
		state:        StateIdle,
		audioEnabled: config.AudioEnabled,
		sink:         sink,
	}
}

// SetPersister injects the checkpoint store.
func (controller *Controller) SetPersister(persister Persister) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.persister = persister
}

// ID returns the session identifier.
func (controller *Controller) ID() string {
	return controller.id
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// Snapshot returns the current state of both timers.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

// State returns the session state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Config returns the configuration currently held by the session.
func (controller *Controller) Config() model.SessionConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.configLocked()
}

// SettingsAvailable reports whether session settings may be changed.
func (controller *Controller) SettingsAvailable() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return !controller.closed && controller.state == StateIdle && !controller.editPending
}

// Start starts both timers and the tick driver.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if controller.editPending {
		controller.mu.Unlock()
		return fmt.Errorf("start: %w", ErrEditPending)
	}
	if controller.state != StateIdle {
		state := controller.state
		controller.mu.Unlock()
		return fmt.Errorf("start while %s: %w", state, ErrInvalidState)
	}

	controller.episode.Start()
	controller.speaker.Start()
	controller.state = StateRunning
	controller.spawnDriverLocked()
	controller.emitLocked(Event{Type: EventStateChange})
	config := controller.configLocked()
	persister := controller.persister
	controller.mu.Unlock()

	logger.Info("session started", "session", controller.id,
		"episode", config.Episode, "speaker", config.Speaker)
	if persister != nil {
		persister.Persist(config)
	}
	return nil
}

// Pause freezes both timers. No tick is applied after Pause returns.
func (controller *Controller) Pause() error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if controller.state != StateRunning {
		state := controller.state
		controller.mu.Unlock()
		return fmt.Errorf("pause while %s: %w", state, ErrInvalidState)
	}
	controller.state = StatePaused
	stopped := controller.stopDriverLocked()
	controller.emitLocked(Event{Type: EventStateChange})
	controller.mu.Unlock()

	stopped.wait()
	logger.Debug("session paused", "session", controller.id)
	return nil
}

// Resume restarts the tick driver after a pause.
func (controller *Controller) Resume() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if err := controller.checkOpenLocked(); err != nil {
		return err
	}
	if controller.state != StatePaused {
		return fmt.Errorf("resume while %s: %w", controller.state, ErrInvalidState)
	}
	controller.state = StateRunning
	controller.spawnDriverLocked()
	controller.emitLocked(Event{Type: EventStateChange})
	logger.Debug("session resumed", "session", controller.id)
	return nil
}

// Reset stops both timers and restores their configured durations. It returns
// once the tick driver has exited.
func (controller *Controller) Reset() error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if controller.state == StateIdle {
		controller.mu.Unlock()
		return nil
	}
	stopped := controller.stopDriverLocked()
	controller.episode.Stop()
	controller.speaker.Stop()
	controller.state = StateIdle
	controller.emitLocked(Event{Type: EventStateChange})
	controller.mu.Unlock()

	stopped.wait()
	logger.Info("session reset", "session", controller.id)
	return nil
}

// Next restarts the speaker timer without touching the episode timer.
func (controller *Controller) Next() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if err := controller.checkOpenLocked(); err != nil {
		return err
	}
	if controller.editPending {
		return fmt.Errorf("next speaker: %w", ErrEditPending)
	}
	controller.speaker.ResetSelf()
	controller.emitLocked(Event{Type: EventSpeakerNext})
	return nil
}

// BeginEdit opens a coordinated edit of both timers and returns their
// current values as drafts.
func (controller *Controller) BeginEdit() (EditRequest, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if err := controller.checkOpenLocked(); err != nil {
		return EditRequest{}, err
	}
	if controller.editPending {
		return EditRequest{}, fmt.Errorf("begin edit: %w", ErrEditPending)
	}
	if controller.state != StateIdle {
		return EditRequest{}, fmt.Errorf("begin edit while %s: %w", controller.state, ErrInvalidState)
	}

	controller.editPending = true
	config := controller.configLocked()
	drafts := EditRequest{
		Episode: DraftFor(config.Episode),
		Speaker: DraftFor(config.Speaker),
	}
	controller.emitLocked(Event{Type: EventEdit, Edit: EditBegin, Drafts: drafts})
	return drafts, nil
}

// CommitEdit applies both drafts or neither. On invalid input the edit stays
// open and an *InputError is returned.
func (controller *Controller) CommitEdit(request EditRequest) error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if !controller.editPending {
		controller.mu.Unlock()
		return ErrNoEdit
	}

	parsed, err := request.parse()
	if err != nil {
		controller.emitLocked(Event{Type: EventEdit, Edit: EditRejected, Drafts: request, Err: err})
		controller.mu.Unlock()
		return err
	}

	if err := controller.setTimesLocked(parsed.episode, parsed.speaker); err != nil {
		controller.mu.Unlock()
		return fmt.Errorf("commit edit: %w", err)
	}
	controller.editPending = false
	config := controller.configLocked()
	controller.emitLocked(Event{Type: EventEdit, Edit: EditCommit, Drafts: EditRequest{
		Episode: DraftFor(config.Episode),
		Speaker: DraftFor(config.Speaker),
	}})
	persister := controller.persister
	controller.mu.Unlock()

	logger.Debug("edit committed", "session", controller.id,
		"episode", config.Episode, "speaker", config.Speaker)
	if persister != nil {
		persister.Persist(config)
	}
	return nil
}

// CancelEdit discards the pending drafts of both timers.
func (controller *Controller) CancelEdit() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if err := controller.checkOpenLocked(); err != nil {
		return err
	}
	if !controller.editPending {
		return ErrNoEdit
	}
	controller.editPending = false
	config := controller.configLocked()
	controller.emitLocked(Event{Type: EventEdit, Edit: EditCancel, Drafts: EditRequest{
		Episode: DraftFor(config.Episode),
		Speaker: DraftFor(config.Speaker),
	}})
	return nil
}

// SetAudioEnabled toggles audio cues. It is rejected while an edit is pending.
func (controller *Controller) SetAudioEnabled(enabled bool) error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if controller.editPending {
		controller.mu.Unlock()
		return fmt.Errorf("set audio: %w", ErrEditPending)
	}
	controller.audioEnabled = enabled
	controller.emitLocked(Event{Type: EventSettings})
	config := controller.configLocked()
	persister := controller.persister
	controller.mu.Unlock()

	if persister != nil {
		persister.Persist(config)
	}
	return nil
}

// ApplyConfig replaces durations and audio flag. Only allowed while idle.
func (controller *Controller) ApplyConfig(config model.SessionConfig) error {
	controller.mu.Lock()
	if err := controller.checkOpenLocked(); err != nil {
		controller.mu.Unlock()
		return err
	}
	if controller.editPending {
		controller.mu.Unlock()
		return fmt.Errorf("apply settings: %w", ErrEditPending)
	}
	if controller.state != StateIdle {
		state := controller.state
		controller.mu.Unlock()
		return fmt.Errorf("apply settings while %s: %w", state, ErrInvalidState)
	}

	if err := controller.setTimesLocked(config.Episode, config.Speaker); err != nil {
		controller.mu.Unlock()
		return fmt.Errorf("apply settings: %w", err)
	}
	controller.audioEnabled = config.AudioEnabled
	controller.emitLocked(Event{Type: EventSettings})
	applied := controller.configLocked()
	persister := controller.persister
	controller.mu.Unlock()

	if persister != nil {
		persister.Persist(applied)
	}
	return nil
}

// Close terminates the tick driver and closes observers.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	stopped := controller.stopDriverLocked()
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	stopped.wait()
	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) run(active *driver, generation uint64) {
	defer close(active.done)

	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-active.stop:
			return
		case <-ticker.C:
			controller.tick(generation)
		}
	}
}

// tick advances both timers as one step, then hands cues to the sink.
func (controller *Controller) tick(generation uint64) {
	controller.mu.Lock()
	if controller.state != StateRunning || generation != controller.generation {
		controller.mu.Unlock()
		return
	}

	var cues []feedback.Cue
	for _, countdown := range []*timer.Timer{controller.episode, controller.speaker} {
		if stage, changed := countdown.Tick(); changed {
			cues = append(cues, feedback.Cue{
				Role:  countdown.Role(),
				Stage: stage,
				Audio: controller.audioEnabled,
			})
		}
	}

	controller.emitLocked(Event{Type: EventTick})
	for index := range cues {
		controller.emitLocked(Event{Type: EventStage, Cue: &cues[index]})
	}
	sink := controller.sink
	controller.mu.Unlock()

	for _, cue := range cues {
		logger.Debug("stage change", "session", controller.id, "role", cue.Role, "stage", cue.Stage)
		if sink == nil {
			continue
		}
		if !controller.isCurrent(generation) {
			logger.Debug("cue dropped after reset", "session", controller.id, "role", cue.Role, "stage", cue.Stage)
			continue
		}
		sink.Dispatch(cue)
	}
}

// isCurrent reports whether generation still belongs to the running driver.
func (controller *Controller) isCurrent(generation uint64) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state == StateRunning && generation == controller.generation
}

// setTimesLocked sets both durations or neither.
func (controller *Controller) setTimesLocked(episode, speaker model.TimerDuration) error {
	if !controller.episode.Editable() || !controller.speaker.Editable() {
		return timer.ErrRunning
	}
	if err := controller.episode.SetTime(episode.Minutes, episode.Seconds); err != nil {
		return err
	}
	return controller.speaker.SetTime(speaker.Minutes, speaker.Seconds)
}

func (controller *Controller) spawnDriverLocked() {
	controller.generation++
	active := &driver{stop: make(chan struct{}), done: make(chan struct{})}
	controller.driver = active
	go controller.run(active, controller.generation)
}

// stopDriverLocked invalidates in-flight ticks and signals the driver to exit.
// The caller waits on the returned driver after releasing the lock.
func (controller *Controller) stopDriverLocked() *driver {
	controller.generation++
	active := controller.driver
	controller.driver = nil
	if active != nil {
		close(active.stop)
	}
	return active
}

func (active *driver) wait() {
	if active != nil {
		<-active.done
	}
}

func (controller *Controller) checkOpenLocked() error {
	if controller.closed {
		return ErrClosed
	}
	return nil
}

func (controller *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:    controller.id,
		State:        controller.state,
		EditPending:  controller.editPending,
		AudioEnabled: controller.audioEnabled,
		Episode:      controller.episode.Snapshot(),
		Speaker:      controller.speaker.Snapshot(),
	}
}

func (controller *Controller) configLocked() model.SessionConfig {
	return model.SessionConfig{
		Episode:      model.DurationFromSeconds(controller.episode.Total()),
		Speaker:      model.DurationFromSeconds(controller.speaker.Total()),
		AudioEnabled: controller.audioEnabled,
	}
}

// emitLocked stamps the event with the current snapshot and fans it out
// without blocking.
func (controller *Controller) emitLocked(event Event) {
	event.Snapshot = controller.snapshotLocked()
	if event.At.IsZero() {
		event.At = time.Now()
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
