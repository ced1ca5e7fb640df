package model

// Version is the released version of treaform, bumped on tag.
const Version = "0.2.1"
