// Package wire defines the JSON message envelopes exchanged with clients.
//
// Every envelope carries a "type" discriminant plus payload fields. The
// client-to-server types are join_game, setup_complete, fire and
// fire_result; the server-to-client types are game_start, opponent_fire,
// shot_result, turn_change, game_end and error.
//
// Decode peeks at the discriminant and returns the matching typed struct,
// so handlers switch on concrete types rather than on raw JSON. Outbound
// envelopes are built with the New* constructors, which fill in the
// discriminant.
//
// Coordinates travel as zero-based [row,col] arrays (engine.Cell handles
// the array encoding).
package wire
