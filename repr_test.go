package baseclass_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/baseclass"
)

func account() *baseclass.Class {
	return baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Account", Attrs: []baseclass.Attr{
		ann("user", strT),
		val("password", strT, baseclass.MustField(baseclass.WithStr(false))),
		val("pin", intT, baseclass.MustField(baseclass.WithRepr(false), baseclass.WithDefault(0))),
		val("tags", typeOf[[]string](), nil),
	}})
}

func TestRepr_StrParticipation(t *testing.T) {
	inst := account().MustNew(baseclass.Kwargs{"user": "ann", "password": "hunter2", "tags": []string{"a", "b"}})

	assert.Equal(t, `Account(user="ann", password="hunter2", tags=["a", "b"])`, inst.DebugRepr())
	assert.Equal(t, `Account(user=ann, pin=0, tags=[a, b])`, inst.DisplayStr())
	assert.NotContains(t, inst.DisplayStr(), "hunter2")

	assert.Equal(t, inst.DisplayStr(), inst.String())
	assert.Equal(t, inst.DebugRepr(), fmt.Sprintf("%#v", inst))
	assert.Equal(t, inst.DisplayStr(), fmt.Sprintf("%v", inst))
}

func TestRepr_NestedInstances(t *testing.T) {
	acc := account().MustNew(baseclass.Kwargs{"user": "u", "password": "p"})
	holder := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Holder", Attrs: []baseclass.Attr{ann("acc", nil)}})
	h := holder.MustNew(baseclass.Kwargs{"acc": acc})

	assert.Equal(t, `Holder(acc=Account(user="u", password="p", tags=nil))`, h.DebugRepr())
	assert.Equal(t, `Holder(acc=Account(...))`, h.DisplayStr())
}

func TestRepr_EmptyClass(t *testing.T) {
	empty := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Empty"})
	assert.Equal(t, "Empty()", empty.MustNew(nil).DebugRepr())
	assert.Equal(t, "Empty()", empty.MustNew(nil).DisplayStr())
}

func TestDump(t *testing.T) {
	acc := account().MustNew(baseclass.Kwargs{"user": "u", "password": "p"})
	holder := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Holder", Attrs: []baseclass.Attr{ann("acc", nil), val("n", intT, 1)}})
	out := holder.MustNew(baseclass.Kwargs{"acc": acc}).Dump()

	assert.Contains(t, out, "Holder {\n  acc: Account {\n")
	assert.Contains(t, out, "    password: (string) (len=1) \"p\"\n")
	assert.Contains(t, out, "    pin: (int) 0\n")
	assert.Contains(t, out, "  n: (int) 1\n}\n")
}

func TestDebugAndDisplayString(t *testing.T) {
	assert.Equal(t, `"x"`, baseclass.DebugString("x"))
	assert.Equal(t, "x", baseclass.DisplayString("x"))
}
