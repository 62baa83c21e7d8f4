// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements the state of rulers for Gio programs. A
// Ruler contains persistent state and processes user events. Style
// packages such as `widget/material` implement the drawing of rulers.
package widget
