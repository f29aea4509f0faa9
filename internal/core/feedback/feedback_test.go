package feedback

import (
	"sync"
	"testing"
	"time"

	"podcasttimer/internal/core/timer"
)

type recordedTone struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

type recordingPlayer struct {
	mu    sync.Mutex
	tones []recordedTone
}

func (player *recordingPlayer) PlayTone(frequency float64, duration time.Duration, volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.tones = append(player.tones, recordedTone{frequency: frequency, duration: duration, volume: volume})
}

func (player *recordingPlayer) played() []recordedTone {
	player.mu.Lock()
	defer player.mu.Unlock()
	return append([]recordedTone(nil), player.tones...)
}

func TestDescribeEpisode(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		stage     timer.Stage
		status    string
		pulse     bool
	}{
		{name: "start", remaining: 1200, stage: timer.StageGreat, status: ""},
		{name: "halfway", remaining: 600, stage: timer.StageGreat, status: "HALF WAY THERE"},
		{name: "after halfway window", remaining: 540, stage: timer.StageGreat, status: ""},
		{name: "yellow", remaining: 300, stage: timer.StageYellow, status: "START SUMMARIZING"},
		{name: "red", remaining: 120, stage: timer.StageRed, status: "FINALIZE THE EPISODE", pulse: true},
		{name: "done", remaining: 0, stage: timer.StageDone, status: "TIME'S UP", pulse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := Describe(timer.Snapshot{
				Role:      timer.RoleEpisode,
				Total:     1200,
				Remaining: tt.remaining,
				Running:   true,
				Stage:     tt.stage,
			})
			if descriptor.StatusText != tt.status {
				t.Errorf("status = %q, want %q", descriptor.StatusText, tt.status)
			}
			if descriptor.Color != tt.stage {
				t.Errorf("color = %s, want %s", descriptor.Color, tt.stage)
			}
			if descriptor.Pulse != tt.pulse {
				t.Errorf("pulse = %v, want %v", descriptor.Pulse, tt.pulse)
			}
			if !descriptor.Backdrop {
				t.Error("episode descriptor must drive the backdrop")
			}
		})
	}
}

func TestDescribeSpeaker(t *testing.T) {
	statuses := map[timer.Stage]string{
		timer.StageGreat:  "DOING GREAT",
		timer.StageYellow: "GET TO THE POINT",
		timer.StageRed:    "WRAP IT UP",
		timer.StageDone:   "TIME'S UP",
	}

	for stage, want := range statuses {
		descriptor := Describe(timer.Snapshot{Role: timer.RoleSpeaker, Total: 120, Remaining: 60, Running: true, Stage: stage})
		if descriptor.StatusText != want {
			t.Errorf("%s status = %q, want %q", stage, descriptor.StatusText, want)
		}
		if descriptor.Backdrop {
			t.Errorf("%s: speaker descriptor must not drive the backdrop", stage)
		}
	}

	halfway := Describe(timer.Snapshot{Role: timer.RoleSpeaker, Total: 120, Remaining: 60, Running: true, Stage: timer.StageGreat})
	if halfway.StatusText != "DOING GREAT" {
		t.Errorf("speaker has no halfway text, got %q", halfway.StatusText)
	}
}

func TestDescribeIdleHasNoStatus(t *testing.T) {
	descriptor := Describe(timer.Snapshot{Role: timer.RoleSpeaker, Total: 120, Remaining: 120, Stage: timer.StageGreat})
	if descriptor.StatusText != "" {
		t.Errorf("idle status = %q, want empty", descriptor.StatusText)
	}
}

func TestProfiles(t *testing.T) {
	if ProfileFor(timer.StageGreat).Audible() {
		t.Error("great must be silent")
	}
	yellow := ProfileFor(timer.StageYellow)
	red := ProfileFor(timer.StageRed)
	done := ProfileFor(timer.StageDone)
	if !(yellow.FrequencyHz > red.FrequencyHz && red.FrequencyHz > done.FrequencyHz) {
		t.Errorf("frequencies must fall with severity: %v %v %v", yellow.FrequencyHz, red.FrequencyHz, done.FrequencyHz)
	}
	if done.Pulses != 2 {
		t.Errorf("done pulses = %d, want 2", done.Pulses)
	}
}

func TestDispatchPlaysProfile(t *testing.T) {
	player := &recordingPlayer{}
	dispatcher := NewDispatcher(player)
	var slept []time.Duration
	dispatcher.sleep = func(duration time.Duration) { slept = append(slept, duration) }

	if !dispatcher.Dispatch(Cue{Role: timer.RoleEpisode, Stage: timer.StageDone, Audio: true}) {
		t.Fatal("done cue was not dispatched")
	}
	dispatcher.Wait()

	tones := player.played()
	if len(tones) != 2 {
		t.Fatalf("played %d tones, want 2", len(tones))
	}
	if tones[0].frequency != 330 || tones[0].duration != 300*time.Millisecond {
		t.Errorf("unexpected tone %+v", tones[0])
	}
	if len(slept) != 1 || slept[0] != 380*time.Millisecond {
		t.Errorf("gaps = %v, want [380ms]", slept)
	}
}

func TestDispatchSuppressed(t *testing.T) {
	player := &recordingPlayer{}
	dispatcher := NewDispatcher(player)

	if dispatcher.Dispatch(Cue{Role: timer.RoleEpisode, Stage: timer.StageRed, Audio: false}) {
		t.Error("cue with audio disabled was dispatched")
	}
	if dispatcher.Dispatch(Cue{Role: timer.RoleSpeaker, Stage: timer.StageGreat, Audio: true}) {
		t.Error("great cue was dispatched")
	}
	dispatcher.Wait()
	if len(player.played()) != 0 {
		t.Errorf("played %d tones, want 0", len(player.played()))
	}

	if NewDispatcher(nil).Dispatch(Cue{Stage: timer.StageYellow, Audio: true}) {
		t.Error("dispatcher without player reported playback")
	}
}

type panickingPlayer struct{}

func (panickingPlayer) PlayTone(float64, time.Duration, float64) {
	panic("device gone")
}

func TestDispatchRecoversFromPlayerPanic(t *testing.T) {
	dispatcher := NewDispatcher(panickingPlayer{})
	dispatcher.Dispatch(Cue{Stage: timer.StageYellow, Audio: true})
	dispatcher.Wait()
}

func TestRender(t *testing.T) {
	frame := Render(
		timer.Snapshot{Role: timer.RoleEpisode, Total: 1200, Remaining: 300, Running: true, Stage: timer.StageYellow},
		timer.Snapshot{Role: timer.RoleSpeaker, Total: 120, Remaining: 0, Running: true, Stage: timer.StageDone},
	)
	if frame.Episode.Descriptor.StatusText != "START SUMMARIZING" {
		t.Errorf("episode status = %q", frame.Episode.Descriptor.StatusText)
	}
	if frame.Speaker.Timer.Clock() != "00:00" {
		t.Errorf("speaker clock = %q", frame.Speaker.Timer.Clock())
	}
}
