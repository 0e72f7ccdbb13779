// This file is part of saturncore; the IREG/OREG/COMREG/SF command
// register shape follows the same command/status mailbox idiom
// internal/cd (CDCommand/CDStatus) already uses for the CD drive, since the
// real SMPC's INTBACK/SETTIME/RESENAB command protocol is the same kind of
// "write a command byte, poll a status flag, read back a result block"
// machine.

// Package smpc implements the System Manager peripheral (spec §2.8): area
// code reporting, the battery-backed real-time clock, system reset gating,
// and digital-controller input multiplexing via the INTBACK command.
package smpc
