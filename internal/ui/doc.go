// Package ui contains the Bubble Tea program that hosts the panels and their
// context menus. The Model owns a dom.Document and a menu.Registry; terminal
// input is translated into document events and the registry does the rest.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Mouse presses become click (left) or contextmenu (right) events on the
//     element under the pointer. Focus loss becomes a blur event on the body.
//     Key presses either move row focus and open the focused row's menu, or,
//     while a menu is open, move its highlight, jump by typed label and select.
//   - Selecting an item raises its token as an event on the row the menu was
//     opened on. A body listener reports it in the status line and queues the
//     configured action on the command bus.
//
// Reloading:
//   - A watch.Watcher streams decoded menu files. Each event unloads every
//     menu and rebuilds the scene; a file that cannot be realised is reported
//     and the previous one is restored.
package ui
