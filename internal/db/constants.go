package db

// timestampLayout is how timestamps are written so that SQLite's date/time
// functions can read them back.
const timestampLayout = "2006-01-02 15:04:05"
