package linkgraph_test

import (
	"github.com/citerank/citerank/linkgraph"
	"github.com/citerank/citerank/linkgraph/mocks"
	"github.com/citerank/citerank/linkgraph/store/memory"
	"github.com/golang/mock/gomock"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CopyTestSuite))

type CopyTestSuite struct{}

func (s *CopyTestSuite) TestCopy(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	records := []*linkgraph.Record{
		{Target: 3, Sources: []int64{1, 2}},
		{Target: 1, Sources: []int64{}},
	}

	it := mocks.NewMockRecordIterator(ctrl)
	var cur int
	it.EXPECT().Next().DoAndReturn(func() bool {
		cur++
		return cur <= len(records)
	}).Times(len(records) + 1)
	it.EXPECT().Record().DoAndReturn(func() *linkgraph.Record { return records[cur-1] }).Times(len(records))
	it.EXPECT().Error().Return(nil)
	it.EXPECT().Close().Return(nil)

	store := memory.NewInMemoryStore()
	n, err := linkgraph.Copy(store, it)
	c.Assert(err, gc.IsNil)
	c.Assert(n, gc.Equals, 2)

	copied, err := store.Records()
	c.Assert(err, gc.IsNil)
	var targets []int64
	for copied.Next() {
		targets = append(targets, copied.Record().Target)
	}
	c.Assert(copied.Close(), gc.IsNil)
	c.Assert(targets, gc.DeepEquals, []int64{3, 1})
}

func (s *CopyTestSuite) TestCopyIteratorError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	iterErr := xerrors.New("line 7: bad token")
	it := mocks.NewMockRecordIterator(ctrl)
	it.EXPECT().Next().Return(false)
	it.EXPECT().Error().Return(iterErr)
	it.EXPECT().Close().Return(nil)

	n, err := linkgraph.Copy(memory.NewInMemoryStore(), it)
	c.Assert(n, gc.Equals, 0)
	c.Assert(err, gc.Equals, iterErr)
}
