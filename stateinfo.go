package main

import (
	"encoding/json"
	"os"

	"damga/sha1"
)

const stateFileExt = ".info"

// StateInfo holds the progress of a resumable digest session: the
// number of bytes consumed so far and the serialized engine state.
// No content is kept, only the state needed to continue hashing.
type StateInfo struct {
	Offset int64        `json:"offset"`
	Sha1   *sha1.Digest `json:"sha1"`
}

func newStateInfo() *StateInfo {
	return &StateInfo{
		Sha1: sha1.New(),
	}
}

func ReadStateInfo(path string) (si *StateInfo, err error) {
	f, err := os.Open(path + stateFileExt)
	if os.IsNotExist(err) {
		return newStateInfo(), nil
	}
	if err != nil {
		return
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&si)
	return
}

func SaveStateInfo(path string, si *StateInfo) error {
	f, err := os.Create(path + stateFileExt)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(si)
}

func DeleteStateInfo(path string) error {
	return os.Remove(path + stateFileExt)
}
