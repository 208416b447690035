package engine2000

// injectedInput represents a single synthetic key or button event. A wait
// entry consumes a frame without changing state.
type injectedInput struct {
	key      Key
	button   Button
	isButton bool
	down     bool
	wait     bool
}

// InjectKeyDown queues a synthetic press of k. The event is applied on the
// next BeginFrame and k stays held until InjectKeyUp.
func (s *InputState) InjectKeyDown(k Key) {
	s.injectQueue = append(s.injectQueue, injectedInput{key: k, down: true})
}

// InjectKeyUp queues a synthetic release of k.
func (s *InputState) InjectKeyUp(k Key) {
	s.injectQueue = append(s.injectQueue, injectedInput{key: k})
}

// InjectButtonDown queues a synthetic press of gamepad button b.
func (s *InputState) InjectButtonDown(b Button) {
	s.injectQueue = append(s.injectQueue, injectedInput{button: b, isButton: true, down: true})
}

// InjectButtonUp queues a synthetic release of gamepad button b.
func (s *InputState) InjectButtonUp(b Button) {
	s.injectQueue = append(s.injectQueue, injectedInput{button: b, isButton: true})
}

// InjectKeyTap queues a press of k held for the given number of frames
// followed by a release. The sequence consumes frames+1 frames. Minimum
// frames is 1.
func (s *InputState) InjectKeyTap(k Key, frames int) {
	if frames < 1 {
		frames = 1
	}
	s.InjectKeyDown(k)
	for i := 1; i < frames; i++ {
		s.injectQueue = append(s.injectQueue, injectedInput{wait: true})
	}
	s.InjectKeyUp(k)
}

// PendingInjections returns the number of queued synthetic events.
func (s *InputState) PendingInjections() int {
	return len(s.injectQueue)
}

// applyInjected pops one event from the inject queue. Returns true if an
// event was consumed.
func (s *InputState) applyInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch {
	case evt.wait:
	case evt.isButton:
		if evt.button < ButtonCount {
			s.injectedButtons[evt.button] = evt.down
		}
	default:
		if evt.key < KeyCount {
			s.injectedKeys[evt.key] = evt.down
		}
	}
	return true
}
