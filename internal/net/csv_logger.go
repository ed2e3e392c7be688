package net

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"time"
)

// CSVLogger logs per-epoch mean loss to a CSV file with the columns
// epoch, loss and time_seconds.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, appendMode bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   appendMode,
	}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		log.Printf("CSVLogger: failed to open file %s: %v", c.Filename, err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write([]string{"epoch", "loss", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.writer == nil {
		return
	}

	c.write([]string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'f', 6, 64),
		strconv.FormatFloat(time.Since(c.start).Seconds(), 'f', 2, 64),
	})
}

func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil {
		log.Printf("CSVLogger: failed to write record: %v", err)
		return
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		log.Printf("CSVLogger: failed to flush: %v", err)
	}
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file == nil {
		return
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		log.Printf("CSVLogger: failed to flush %s: %v", c.Filename, err)
	}
	if err := c.file.Close(); err != nil {
		log.Printf("CSVLogger: failed to close %s: %v", c.Filename, err)
	}
	c.file = nil
	c.writer = nil
}
