package rangeimage

import (
	"context"

	"github.com/google/uuid"
	"go.opencensus.io/trace"

	"go.viam.com/lidarfront/config"
	"go.viam.com/lidarfront/ingest"
	"go.viam.com/lidarfront/logging"
)

// Pipeline runs the whole front end (spec §2) against one Image, which it
// owns and resets before every scan. Construct one Pipeline per scanner
// geometry and reuse it across scans, matching spec §5's single-threaded,
// sequential-per-scan scheduling model.
type Pipeline struct {
	Cfg config.Config
	Log logging.Logger

	img *Image
}

// New constructs a Pipeline for the given geometry. cfg must already be
// valid (config.Config.Validate); New does not validate it again.
func New(cfg config.Config, log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewLogger("rangeimage")
	}
	return &Pipeline{
		Cfg: cfg,
		Log: log,
		img: NewImage(cfg),
	}
}

// Process runs one scan through ingest, projection, ground classification,
// segmentation, and emission (spec §4.1-§4.6), instrumented with an
// opencensus span per stage the way
// services/vision/obstaclespointcloud/obstacles_pointcloud.go traces its
// own segmentation pipeline. On any ingest error (InputNotDense, or a ring
// array whose length differs from the point count) it aborts and discards
// the scan's outputs entirely (spec §7's partial-failure policy); every
// other condition is tolerated and produces an Emission.
func (p *Pipeline) Process(ctx context.Context, batch ingest.Batch) (Emission, error) {
	ctx, span := trace.StartSpan(ctx, "rangeimage::Pipeline::Process")
	defer span.End()

	_, ingestSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::Ingest")
	result, err := ingest.Ingest(batch)
	ingestSpan.End()
	if err != nil {
		p.Log.Errorw("ingest failed, discarding scan", "error", err)
		return Emission{}, err
	}
	p.Log.Debugw("ingested scan", "points", len(result.Points), "dropped_nan", result.DroppedNaN)

	p.img.Reset()

	if len(result.Points) == 0 {
		p.Log.Warnw("empty scan: zero points after ingest")
		em := Emit(p.img, AzimuthBracket{})
		stampMetadata(&em.Metadata, batch.Header)
		return em, nil
	}

	_, azSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::Azimuth")
	bracket := ComputeAzimuthBracket(result.Points)
	azSpan.End()

	_, projSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::Project")
	var ring []int
	if p.Cfg.UseCloudRing {
		ring = result.Ring
	}
	stats := Project(p.img, result.Points, ring)
	projSpan.End()
	p.Log.Debugw("projected scan",
		"row_out_of_range", stats.RowOutOfRange,
		"col_out_of_range", stats.ColOutOfRange,
		"below_min_range", stats.BelowMinRange,
	)

	if EmptyScan(p.img) {
		p.Log.Warnw("empty scan: no cells received a return after projection")
	}

	_, groundSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::ClassifyGround")
	ClassifyGround(p.img)
	groundSpan.End()

	_, segSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::Segment")
	Segment(p.img)
	segSpan.End()

	_, emitSpan := trace.StartSpan(ctx, "rangeimage::Pipeline::Process::Emit")
	emission := Emit(p.img, bracket)
	stampMetadata(&emission.Metadata, batch.Header)
	emitSpan.End()

	p.Log.Debugw("emitted scan",
		"segmented", len(emission.Segmented),
		"segmented_pure", len(emission.SegmentedPure),
		"outlier", len(emission.Outlier),
		"ground", len(emission.Ground),
		"clusters", p.img.NextClusterID-1,
	)

	return emission, nil
}

// stampMetadata fills in the scan identity fields Emit leaves to its
// caller: a fresh scan id and the sequence header carried in from ingest
// (spec §11).
func stampMetadata(meta *ScanMetadata, header ingest.Header) {
	meta.ScanID = uuid.New()
	meta.Timestamp = header.Timestamp
	meta.FrameID = header.FrameID
}
