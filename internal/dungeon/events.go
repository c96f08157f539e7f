package dungeon

import "quiz-dungeon/internal/gamemap"

// Event is a presentation notification. Subscribers type-switch on the
// concrete value; the run never waits for them.
type Event interface {
	event()
}

// GridChanged asks the presentation layer to redraw the map.
type GridChanged struct{}

// HUDChanged asks for a redraw of score, HP and wave counters.
type HUDChanged struct{}

// Message is a transient notification. Color is a tcell color name.
type Message struct {
	Title string
	Text  string
	Color string
}

// PositionReset fires when a wave advance sends the player back to start.
type PositionReset struct {
	X, Y int
}

// PlayerMoved fires after every accepted move.
type PlayerMoved struct {
	From, To gamemap.Point
}

// TileRevealed fires when the player steps onto a hidden special tile.
type TileRevealed struct {
	Tile SpecialTile
}

// CourseComplete fires once when the boss wave is cleared.
type CourseComplete struct {
	Topic   string
	Summary Summary
}

// RunFailed fires once when the player's HP reaches zero.
type RunFailed struct {
	Summary Summary
}

func (GridChanged) event()    {}
func (HUDChanged) event()     {}
func (Message) event()        {}
func (PositionReset) event()  {}
func (PlayerMoved) event()    {}
func (TileRevealed) event()   {}
func (CourseComplete) event() {}
func (RunFailed) event()      {}

// Subscribe registers fn for every future event. Handlers run synchronously
// on the goroutine driving the run and must not call back into it.
func (r *Run) Subscribe(fn func(Event)) {
	r.subscribers = append(r.subscribers, fn)
}

func (r *Run) emit(ev Event) {
	for _, fn := range r.subscribers {
		fn(ev)
	}
}

func (r *Run) message(title, text, color string) {
	r.emit(Message{Title: title, Text: text, Color: color})
}
