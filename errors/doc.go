// Package errors provides standardized error handling for ringpolicy buffers.
//
// # Overview
//
// Errors fall into three classes: Transient (the condition may clear up, e.g.
// a full buffer that a consumer will drain), Invalid (misuse or bad input,
// retrying is pointless), and Fatal (stop processing).
//
// The classification works with Go's standard error handling: errors.Is,
// errors.As and wrapping chains all see through ClassifiedError.
//
// # Sentinels
//
//   - ErrOverflow: push onto a full buffer whose overflow policy rejects
//   - ErrUnderflow: pop from an empty buffer
//   - ErrReleased: any operation on a buffer whose storage was moved away or released
//   - ErrInvalidCapacity: negative capacity at construction
//
// # Quick Start
//
// Wrap with component context:
//
//	if r.s.full() {
//	    return errors.WrapTransient(errors.ErrOverflow, "Ring", "Push", "reject overflow")
//	}
//
// Check by sentinel or by class:
//
//	item, err := ring.Pop()
//	switch {
//	case errors.Is(err, errors.ErrUnderflow):
//	    // nothing buffered yet
//	case errors.IsInvalid(err):
//	    // ring was moved away, stop using it
//	}
//
// Wrapped errors read as "component.method: action failed: cause", for example
// "Ring.Pop: pop empty buffer failed: buffer underflow".
package errors
