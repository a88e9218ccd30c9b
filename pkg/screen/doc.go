/*
Package screen controls what is left on the terminal around sensitive output.

# How it works:

Every display phase begins and ends with a full clear and a cursor reset, using plain ANSI sequences so that any io.Writer can be driven and inspected in tests.
[Transient] shows a passphrase until a timer fires or the user presses Enter, whichever comes first.
[Progress] animates a spinner on its own goroutine while a long-running call is in flight.
*/
package screen
