// Package common holds identifiers and helpers shared by the dcmcodec tools.
package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// RootUID is the UID prefix under which dcmcodec issues implementation
// and instance UIDs. Issued by Medical Connections Ltd.
const RootUID = "1.2.826.0.1.3680043.9.7484."

// Version equals the current (or aimed for) version of the software.
// It is used in creating ImplementationClassUID(0002,0012)
const Version = "0.2"

// ImplementationVersionName is written to (0002,0013). At most 16 characters.
const ImplementationVersionName = "DCMCODEC_02"

// maxUIDLength is the longest UI value permitted.
const maxUIDLength = 64

// GetImplementationUID generates a DICOM implementation UID from RootUID and Version
// NOTE: implementation UIDs conform to the format:
// <<ROOT>>.<<VERSION>>.<<InstanceType>>
// Where ROOT = RootUID, VERSION = Version, InstanceType= (1 for synthetic data, 0 for others)
func GetImplementationUID(synthetic bool) string {
	instanceType := "0"
	if synthetic {
		instanceType = "1"
	}
	return fmt.Sprintf("%s%s.%s", RootUID, Version, instanceType)
}

// NewRandInstanceUID generates a random instance UID under RootUID.
// The random component never starts with a zero digit.
func NewRandInstanceUID() (string, error) {
	max := big.Int{}
	max.SetString(strings.Repeat("9", maxUIDLength-len(RootUID)), 10)
	randval, err := rand.Int(rand.Reader, &max)
	if err != nil {
		return "", err
	}
	// rand.Int yields [0, max); shift to [1, max] so the component is canonical
	randval.Add(randval, big.NewInt(1))
	return fmt.Sprintf("%s%d", RootUID, randval), nil
}
