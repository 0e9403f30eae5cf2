// Package booking implements the booking enquiry form of the site.
//
// A Form holds one visitor's field values and what the page shows for them.
// Validation is declarative: NewFieldSet registers each field with an
// ordered list of rules and pkg/formfield stops at the first one that
// fails. Around that the Form adds the timing behaviour of the page:
//
//   - Input debounces validation by Config.DebounceDelay; Blur validates now.
//   - Change on the check-in date moves the earliest check-out to the next
//     day, clears a check-out that is no longer after it and re-validates
//     one that is kept after Config.RevalidateDelay.
//   - Submit validates every field. An invalid form returns a *BlockedError
//     naming the field to focus. A valid one is acknowledged in the
//     background and the form resets when the returned future resolves.
//   - Banners and notices hide themselves after their TTL; Dismiss hides
//     error banners and notices early.
//
// Subscribe delivers a notification after every change, including the ones
// made by timers, so a stream can push fresh views to the browser.
//
// A Registry keeps one Form per visitor id and closes idle ones.
package booking
