package canvas

import (
	"errors"
	"fmt"
	"slices"
)

// ClipRegion is one clip taken on a context: the clipped geometry in
// surface space and the rule it was clipped with. Regions are never
// modified after creation.
type ClipRegion struct {
	Path *Path
	Rule FillRule
}

// snapshot is the drawing state pushed by Save.
type snapshot struct {
	style     Style
	transform Matrix
	dash      []float64
	regions   []ClipRegion
}

// clipStack emulates a restorable clip on top of a host whose clip can
// only shrink. The host's own save/restore pair is reserved for returning
// to an unclipped baseline, from which the active regions are replayed.
type clipStack struct {
	native  Native
	regions []ClipRegion
	saved   []snapshot
}

func newClipStack(n Native) clipStack {
	// Everything above this Save is ours to discard.
	n.Save()
	return clipStack{native: n}
}

// reset drops every region and saved state and re-establishes the
// baseline on a host that has itself just been reset.
func (cs *clipStack) reset(n Native) {
	cs.native = n
	cs.regions = nil
	cs.saved = nil
	n.Save()
}

func (cs *clipStack) capture(regions []ClipRegion) snapshot {
	return snapshot{
		style:     cs.native.Style(),
		transform: cs.native.GetTransform(),
		dash:      slices.Clone(cs.native.LineDash()),
		regions:   regions,
	}
}

func (cs *clipStack) save() {
	cs.saved = append(cs.saved, cs.capture(slices.Clone(cs.regions)))
}

// restore pops the last saved state. It reports false when there was
// nothing to restore. If the state cannot be replayed it stays on the
// stack and the host is put back into the current state.
func (cs *clipStack) restore() (bool, error) {
	if len(cs.saved) == 0 {
		return false, nil
	}
	cur := cs.capture(cs.regions)
	top := len(cs.saved) - 1
	if err := cs.apply(cs.saved[top]); err != nil {
		return true, cs.rollback(cur, err)
	}
	cs.saved[top] = snapshot{}
	cs.saved = cs.saved[:top]
	return true, nil
}

func (cs *clipStack) clip(r ClipRegion) error {
	regions := make([]ClipRegion, len(cs.regions), len(cs.regions)+1)
	copy(regions, cs.regions)
	return cs.replace(append(regions, r))
}

func (cs *clipStack) setClip(r ClipRegion) error {
	return cs.replace([]ClipRegion{r})
}

func (cs *clipStack) resetClip() error {
	return cs.replace(nil)
}

// replace makes regions the active clip. The regions only become active
// once the host has accepted all of them.
func (cs *clipStack) replace(regions []ClipRegion) error {
	cur := cs.capture(cs.regions)
	next := cur
	next.regions = regions
	if err := cs.apply(next); err != nil {
		return cs.rollback(cur, err)
	}
	return nil
}

// rollback re-establishes prev on the host after a failed apply and
// returns err, joined with the rollback failure if there is one.
func (cs *clipStack) rollback(prev snapshot, err error) error {
	if rerr := cs.apply(prev); rerr != nil {
		return errors.Join(err, fmt.Errorf("canvas: roll back: %w", rerr))
	}
	return err
}

// apply puts the host into state s: back to the baseline, style
// reapplied, every region of s clipped in order, then transform and dash.
// Regions are in surface space and are clipped under the identity.
func (cs *clipStack) apply(s snapshot) error {
	n := cs.native
	n.Restore()
	n.Save()

	if err := n.SetStyle(s.style); err != nil {
		return fmt.Errorf("canvas: reapply style: %w", err)
	}
	n.SetTransform(Identity())
	for i, r := range s.regions {
		if err := n.Clip(r.Path, r.Rule); err != nil {
			return fmt.Errorf("canvas: replay clip %d: %w", i, err)
		}
	}
	n.SetTransform(s.transform)
	if err := n.SetLineDash(s.dash); err != nil {
		return fmt.Errorf("canvas: reapply line dash: %w", err)
	}
	cs.regions = s.regions

	Logger().Debug("canvas: clip replay", "regions", len(s.regions), "depth", len(cs.saved))
	return nil
}
