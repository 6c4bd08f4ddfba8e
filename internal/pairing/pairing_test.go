package pairing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hltvalidation/trcompare/internal/domain"
	"github.com/hltvalidation/trcompare/internal/testutil"
)

const (
	refRoot = "/data/ref"
	tgtRoot = "/data/tgt"
)

func ref(rel string) string { return filepath.Join(refRoot, rel) }
func tgt(rel string) string { return filepath.Join(tgtRoot, rel) }

func TestLocate(t *testing.T) {
	t.Parallel()
	wf, base, err := Locate(refRoot, ref("wfA/sub/step1.root"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("wfA", "sub"), wf)
	assert.Equal(t, "step1.root", base)

	wf, base, err = Locate(refRoot, ref("step1.root"))
	require.NoError(t, err)
	assert.Equal(t, "", wf)
	assert.Equal(t, "step1.root", base)
}

func TestBuild_SinglePair(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{ref("wfA/step1.root"): testutil.Listed("HLT")}}
	b := &Builder{Lister: lister}

	wl, st, err := b.Build(context.Background(), Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("wfA/step1.root")},
		TargetFiles:    []string{tgt("wfA/step1.root")},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.WorkflowName{"wfA"}, wl.Workflows())
	pair, found := wl.Pair("wfA", "HLT")
	require.True(t, found)
	assert.Equal(t, domain.FilePair{Reference: ref("wfA/step1.root"), Target: tgt("wfA/step1.root")}, pair)
	assert.Equal(t, 1, st.Registered)
}

func TestBuild_MissingCounterpartSkipsWithoutListing(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{ref("wfA/step1.root"): testutil.Listed("HLT")}}
	b := &Builder{Lister: lister}

	wl, st, err := b.Build(context.Background(), Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("wfA/step1.root")},
		TargetFiles:    []string{tgt("wfB/step1.root"), tgt("step1.root")},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, wl.Len())
	assert.Empty(t, lister.Calls)
	assert.Equal(t, 1, st.Unpaired)
}

func TestBuild_DeduplicatesWithinWorkflow(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{
		ref("wfA/step2.root"): testutil.Listed("HLT"),
		ref("wfA/step3.root"): testutil.Listed("HLT", "RECO"),
		ref("wfA/step4.root"): testutil.Listed("RECO"),
		ref("wfB/step2.root"): testutil.Listed("HLT"),
	}}
	b := &Builder{Lister: lister}

	wl, st, err := b.Build(context.Background(), Input{
		ReferenceRoot: refRoot,
		TargetRoot:    tgtRoot,
		// Unsorted on purpose: iteration must follow sorted path order.
		ReferenceFiles: []string{ref("wfA/step4.root"), ref("wfB/step2.root"), ref("wfA/step3.root"), ref("wfA/step2.root")},
		TargetFiles:    []string{tgt("wfA/step2.root"), tgt("wfA/step3.root"), tgt("wfA/step4.root"), tgt("wfB/step2.root")},
	})
	require.NoError(t, err)

	hlt, _ := wl.Pair("wfA", "HLT")
	assert.Equal(t, ref("wfA/step2.root"), hlt.Reference, "first file wins for HLT")
	reco, _ := wl.Pair("wfA", "RECO")
	assert.Equal(t, ref("wfA/step3.root"), reco.Reference, "first file wins for RECO")
	wfB, _ := wl.Pair("wfB", "HLT")
	assert.Equal(t, ref("wfB/step2.root"), wfB.Reference)

	assert.Equal(t, 3, wl.Comparisons())
	assert.Equal(t, 1, st.AllDuplicates)
	assert.Equal(t, 3, st.Registered)
}

func TestBuild_ListingOutcomes(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{
		ref("wfA/step1.root"): {Outcome: domain.ListFailed, Err: errors.New("edmDumpEventContent: exit status 1")},
		ref("wfA/step2.root"): {Outcome: domain.ListEmpty},
		ref("wfA/step3.root"): testutil.Listed("HLT"),
	}}
	b := &Builder{Lister: lister, Verbosity: 1}

	wl, st, err := b.Build(context.Background(), Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("wfA/step1.root"), ref("wfA/step2.root"), ref("wfA/step3.root")},
		TargetFiles:    []string{tgt("wfA/step1.root"), tgt("wfA/step2.root"), tgt("wfA/step3.root")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, st.ListingFailed)
	assert.Equal(t, 1, st.NoProcessNames)
	assert.Equal(t, []domain.ProcessName{"HLT"}, wl.Processes("wfA"))
}

func TestBuild_InconsistentListingTreatedAsFailure(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{
		ref("wfA/step1.root"): {Outcome: domain.ListOK},
		ref("wfA/step2.root"): {Outcome: domain.ListFailed, Names: []string{"HLT"}, Err: errors.New("partial")},
		ref("wfA/step3.root"): {Outcome: "unknown", Names: []string{"RECO"}},
		ref("wfA/step4.root"): testutil.Listed("HLT"),
	}}
	b := &Builder{Lister: lister}

	wl, st, err := b.Build(context.Background(), Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("wfA/step1.root"), ref("wfA/step2.root"), ref("wfA/step3.root"), ref("wfA/step4.root")},
		TargetFiles:    []string{tgt("wfA/step1.root"), tgt("wfA/step2.root"), tgt("wfA/step3.root"), tgt("wfA/step4.root")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, st.ListingFailed)
	assert.Equal(t, []domain.ProcessName{"HLT"}, wl.Processes("wfA"))
	pair, ok := wl.Pair("wfA", "HLT")
	require.True(t, ok)
	assert.Equal(t, ref("wfA/step4.root"), pair.Reference)
}

func TestBuild_RootLevelFiles(t *testing.T) {
	t.Parallel()
	lister := &testutil.StubLister{Results: map[string]domain.ListResult{ref("step1.root"): testutil.Listed("HLT")}}
	b := &Builder{Lister: lister}

	wl, _, err := b.Build(context.Background(), Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("step1.root")},
		TargetFiles:    []string{tgt("step1.root")},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.WorkflowName{""}, wl.Workflows())
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Builder{Lister: &testutil.StubLister{}}
	_, _, err := b.Build(ctx, Input{
		ReferenceRoot:  refRoot,
		TargetRoot:     tgtRoot,
		ReferenceFiles: []string{ref("wfA/step1.root")},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
