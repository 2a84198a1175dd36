// Command shredder writes a continuous stream of cryptographically strong
// pseudo-random bytes to a file or block device until the destination
// reports it is full.
package main

import (
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/xtaci/shredder/internal/adapt"
	"github.com/xtaci/shredder/internal/keyderiv"
	"github.com/xtaci/shredder/internal/monitor"
	"github.com/xtaci/shredder/internal/pool"
	"github.com/xtaci/shredder/internal/sizeutil"
	"github.com/xtaci/shredder/internal/stream"
	"github.com/xtaci/shredder/internal/writer"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

const (
	// seedBlockSize is the size of one small block produced by the seed
	// producer; it is the unit the reseeding generator's seed source is
	// read in.
	seedBlockSize = 256

	// seedBufferBlocks bounds how many seed blocks may be buffered ahead
	// of consumption.
	seedBufferBlocks = 8

	// reseedEvery is the number of keystream bytes a random worker's
	// XSalsa20 instance emits before it is rekeyed from the seed stream.
	reseedEvery = 64 << 20

	// numSeedWorkers is fixed at 1: the seed stream is low-rate and a
	// single worker comfortably keeps up with many random-data consumers.
	numSeedWorkers = 1
)

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "shredder"
	app.Usage = "overwrite a file or block device with cryptographically strong random bytes until it is full"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "skip-bytes, s",
			Value: "0",
			Usage: "seek this many bytes into the destination before writing (resume)",
		},
		cli.StringFlag{
			Name:  "blocksize, b",
			Value: "10M",
			Usage: "size of a random block, the unit of write I/O",
		},
		cli.IntFlag{
			Name:  "buffersize, u",
			Value: 10,
			Usage: "number of random blocks buffered in memory",
		},
		cli.BoolFlag{
			Name:  "disable-rdrand",
			Usage: "force the hardware-RNG-or-zeroes stream into zeroes mode",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from a JSON file, overriding the flags above",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Printf("%+v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("shredder: missing required OUTPUT_FILE argument", 1)
	}

	skipBytes, err := sizeutil.Parse(c.String("skip-bytes"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	blockSize, err := sizeutil.Parse(c.String("blocksize"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	config := Config{
		Output:        c.Args().Get(0),
		SkipBytes:     skipBytes,
		BlockSize:     blockSize,
		BufferSize:    c.Int("buffersize"),
		DisableRDRand: c.Bool("disable-rdrand"),
	}
	if c.String("c") != "" {
		if err := parseJSONConfig(&config, c.String("c")); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}

	log.Println("output:", config.Output)
	log.Println("skip-bytes:", config.SkipBytes)
	log.Println("blocksize:", config.BlockSize)
	log.Println("buffersize:", config.BufferSize)
	log.Println("disable-rdrand:", config.DisableRDRand)

	f, err := os.OpenFile(config.Output, os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return errors.Wrap(err, "shredder: opening destination")
	}
	defer f.Close()
	if config.SkipBytes > 0 {
		if _, err := f.Seek(config.SkipBytes, 0); err != nil {
			return errors.Wrap(err, "shredder: seeking past skip-bytes")
		}
	}

	return wipe(config, f)
}

func wipe(config Config, dest *os.File) error {
	numRandomWorkers := runtime.GOMAXPROCS(0)
	if numRandomWorkers < 1 {
		numRandomWorkers = 2
	}

	// Seed producer: OS-entropy XOR hardware-RNG-or-zeroes, stretched
	// through PBKDF2, delivered as small seed blocks.
	seedEntropy := stream.NewXOR(stream.NewOSEntropy(), stream.NewHWRandOrZero(config.DisableRDRand))
	seedFactory := func() pool.ProduceFunc[[]byte] {
		bp := adapt.NewByteStreamAsBlockProducer(seedEntropy, seedBlockSize)
		return func() ([]byte, error) {
			raw, err := bp.BlockingRead()
			if err != nil {
				return nil, err
			}
			return keyderiv.Stretch(raw, seedBlockSize), nil
		}
	}
	seedProducer := pool.New[[]byte](numSeedWorkers, seedBufferBlocks, seedFactory)

	cipherFactory := func(seed []byte) (stream.SeedableCipher, error) {
		return stream.NewXSalsa20(seed)
	}

	// Random producer: one reseeding XSalsa20 + one hardware-RNG-or-zeroes
	// stream per worker, each worker partitioning the shared seed channel
	// via its own receiver, so every worker gets distinct cipher and
	// countdown state.
	randomFactory := func() pool.ProduceFunc[[]byte] {
		seedSource := adapt.NewBlockSourceAsByteStream(adapt.NewReceiverBlockSource(seedProducer.MakeReceiver()))
		reseeding := stream.NewReseeding(seedSource, stream.SeedSize, reseedEvery, cipherFactory)
		hw := stream.NewHWRandOrZero(config.DisableRDRand)
		composite := stream.NewXOR(reseeding, hw)
		bp := adapt.NewByteStreamAsBlockProducer(composite, int(config.BlockSize))
		return bp.ProduceFunc()
	}
	randomProducer := pool.New[[]byte](numRandomWorkers, config.BufferSize, randomFactory)

	sink := writer.NewFileSink(dest)
	bw := writer.New(randomProducer.MakeReceiver(), sink)

	mon := monitor.New(bw).
		WithDepth("seed", seedProducer.NumProductsInBuffer).
		WithDepth("random", randomProducer.NumProductsInBuffer)
	go mon.Run()

	var shutdownOnce sync.Once
	shutdown := func() {
		randomProducer.Close()
		seedProducer.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shredder: received shutdown signal, cancelling pipeline")
		shutdownOnce.Do(shutdown)
	}()

	start := time.Now()
	bw.Join()
	shutdownOnce.Do(shutdown)
	mon.Stop()

	elapsed := time.Since(start)
	total := bw.BytesWritten()
	log.Printf("done: %d bytes written in %s (%.2f MB/s average)",
		total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds()/(1<<20))
	return nil
}
