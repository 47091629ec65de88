package repository

// Package repository defines the data access interfaces.
// Implementations live in subpackages (e.g. postgres).
