package bridge

import (
	"errors"
	"strings"
	"testing"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

func TestEveryParamHasOneSpec(t *testing.T) {
	all := append(BridgeParams(), ParamPathCost, ParamPathPriority)
	seen := make(map[string]Param)
	for _, p := range all {
		spec, err := resolveParam(p)
		if err != nil {
			t.Fatalf("resolve %v: %v", p, err)
		}
		if prev, dup := seen[spec.name]; dup {
			t.Errorf("parameter name %q shared by %v and %v", spec.name, prev, p)
		}
		seen[spec.name] = p
		if spec.validate == nil {
			t.Errorf("%s has no validator", spec.name)
		}
		if spec.location == "" {
			t.Errorf("%s has no location", spec.name)
		}
	}
}

func TestUnknownParam(t *testing.T) {
	_, err := resolveParam(Param(99))
	if !errors.Is(err, util.ErrUnknownParameter) {
		t.Errorf("want ErrUnknownParameter, got %v", err)
	}
	if got := Param(99).Name(); !strings.Contains(got, "99") {
		t.Errorf("Name for unknown param = %q", got)
	}
}

func TestTimingParamsConvert(t *testing.T) {
	for _, p := range []Param{ParamAgeingTime, ParamForwardDelay, ParamHelloTime, ParamMaxAge} {
		spec, _ := resolveParam(p)
		if spec.convert == nil {
			t.Errorf("%s: timing parameter without converter", spec.name)
			continue
		}
		if got := spec.convert(2); got != 200 {
			t.Errorf("%s: convert(2) = %d, want 200", spec.name, got)
		}
	}
	for _, p := range []Param{ParamPriority, ParamSTP, ParamMulticastQuerier, ParamPathCost, ParamPathPriority} {
		spec, _ := resolveParam(p)
		if spec.convert != nil {
			t.Errorf("%s: unexpected converter", spec.name)
		}
	}
}

func TestValidators(t *testing.T) {
	if err := validatePositive(1); err != nil {
		t.Errorf("validatePositive(1): %v", err)
	}
	if err := validatePositive(0); err == nil {
		t.Error("validatePositive(0) should fail")
	}
	if err := validateBool(0); err != nil {
		t.Errorf("validateBool(0): %v", err)
	}
	if err := validateBool(1); err != nil {
		t.Errorf("validateBool(1): %v", err)
	}
	if err := validateBool(2); err == nil {
		t.Error("validateBool(2) should fail")
	}
}

func TestPortScopedLocations(t *testing.T) {
	for _, p := range []Param{ParamPathCost, ParamPathPriority} {
		if loc := p.Location(); !strings.Contains(loc, "{port}") {
			t.Errorf("%s location %q not port-scoped", p.Name(), loc)
		}
	}
	for _, p := range BridgeParams() {
		if loc := p.Location(); strings.Contains(loc, "{port}") {
			t.Errorf("%s location %q should not be port-scoped", p.Name(), loc)
		}
	}
}
