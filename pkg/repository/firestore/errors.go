package firestore

import "github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = interfaces.ErrNotFound
