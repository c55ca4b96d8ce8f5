package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTimeObservesResult(t *testing.T) {
	before := testutil.CollectAndCount(OperationDuration)

	func() (err error) {
		defer Time(context.Background(), "test.ok")(&err)
		return nil
	}()
	func() (err error) {
		defer Time(context.Background(), "test.fail")(&err)
		return errors.New("boom")
	}()

	// one new series per (op, result) pair
	assert.Equal(t, before+2, testutil.CollectAndCount(OperationDuration))
}
