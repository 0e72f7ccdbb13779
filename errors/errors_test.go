// This file is part of saturncore.
//
// saturncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// saturncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with saturncore.  If not, see <https://www.gnu.org/licenses/>.

package errors_test

import (
	"fmt"
	"testing"

	"github.com/saturnist/corehw/errors"
	"github.com/saturnist/corehw/test"
)

func TestNormalisation(t *testing.T) {
	inner := errors.Errorf(errors.BusError, "deep cause")
	outer := errors.Errorf(errors.BusError, inner)

	// the outer message and inner message share the same head ("bus error:")
	// so the normalised Error() string should not repeat it
	test.ExpectEquality(t, outer.Error(), "bus error: deep cause")
}

func TestIsAndHas(t *testing.T) {
	inner := errors.Errorf(errors.UnmappedAddress, 0x20000000)
	outer := errors.Errorf(errors.SCUError, inner)

	test.ExpectEquality(t, errors.IsAny(outer), true)
	test.ExpectEquality(t, errors.Is(outer, errors.SCUError), true)
	test.ExpectEquality(t, errors.Is(outer, errors.UnmappedAddress), false)
	test.ExpectEquality(t, errors.Has(outer, errors.UnmappedAddress), true)
}

func TestHead(t *testing.T) {
	err := errors.Errorf(errors.VDP1Error, "bad command")
	test.ExpectEquality(t, errors.Head(err), errors.VDP1Error)
}

func TestPlainError(t *testing.T) {
	// a non-curated error should still work with the helper functions
	plain := fmt.Errorf("plain error")
	test.ExpectEquality(t, errors.IsAny(plain), false)
	test.ExpectEquality(t, errors.Is(plain, errors.SCUError), false)
	test.ExpectEquality(t, errors.Has(plain, errors.SCUError), false)
	test.ExpectEquality(t, errors.Head(plain), "plain error")

	// and so should a nil error
	test.ExpectEquality(t, errors.IsAny(nil), false)
	test.ExpectEquality(t, errors.Is(nil, errors.SCUError), false)
	test.ExpectEquality(t, errors.Has(nil, errors.SCUError), false)
}
