// Package repository holds the MongoDB-backed stores, one per collection.
// References between documents are stored as ObjectIDs and resolved at read
// time by the callers that need them.
package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means the id (or key) matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a unique field (email, topic name) is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
