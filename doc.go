// Package pdf2png turns multi-page documents into one tall PNG.
//
// # Quick Start
//
// Create a converter, convert a PDF, and close when done:
//
//	conv, err := pdf2png.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, pdf2png.Input{Path: "report.pdf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.png", result.PNG, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Rasterization of every page at the configured DPI (poppler pdftoppm),
//     or decoding of caller-supplied page images
//  2. Optional cropping of fixed insets from each page
//  3. Stitching: the first page fixes the output width (portrait or
//     landscape), every page is scaled to that width and stacked below a
//     small top margin on a provisional canvas
//  4. Trimming to the used height, then a uniform reduction when the result
//     is taller than the PNG limit of 65535 rows
//  5. PNG encoding with the DPI stamped into the file
//
// Each finished or abandoned document produces one outcome: normal,
// resized or size-exceeded. Attach an OutcomeLog with WithOutcomeRecorder to
// keep them in a CSV file.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := pdf2png.NewConverter(
//	    pdf2png.WithPortraitWidth(800),
//	    pdf2png.WithDPI(300),
//	    pdf2png.WithCrop(pdf2png.DefaultCrop()),
//	    pdf2png.WithTimeout(2 * time.Minute),
//	)
//
// # Parallel Processing
//
// A Converter holds no per-document state, but every conversion allocates a
// large provisional canvas. ConverterPool bounds how many run at once:
//
//	pool, err := pdf2png.NewConverterPool(2)
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package pdf2png
