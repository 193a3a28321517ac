/*
Package behaviors ships ready-made pipeline behaviors for the dispatcher:
structured logging, panic recovery, request validation, and rate limiting.
Register them with Use/UseRequest/UseResult/UseFor on a Registrar; first
registered runs outermost.
*/
package behaviors
