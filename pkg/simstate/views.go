package simstate

// Dyna is a view over the vehicle dynamics section.
type Dyna []byte

// Offsets of the three dynamics states within the section. Each state is
// dynaStateSize bytes.
const (
	dynaPreviousStateOffset = 268
	dynaCurrentStateOffset  = 448
	dynaTempStateOffset     = 628
	dynaStateSize           = 180
)

func (d Dyna) PreviousState() DynaState {
	return DynaState(d[dynaPreviousStateOffset : dynaPreviousStateOffset+dynaStateSize])
}

func (d Dyna) CurrentState() DynaState {
	return DynaState(d[dynaCurrentStateOffset : dynaCurrentStateOffset+dynaStateSize])
}

func (d Dyna) TempState() DynaState {
	return DynaState(d[dynaTempStateOffset : dynaTempStateOffset+dynaStateSize])
}

// DynaState is a view over a single dynamics state: orientation, position
// and the speed/force accumulators.
type DynaState []byte

func (s DynaState) Quat() [4]float32            { return fieldQuat(s, 0) }
func (s DynaState) SetQuat(q [4]float32)        { setFieldQuat(s, 0, q) }
func (s DynaState) Rotation() [3][3]float32     { return fieldMat3(s, 16) }
func (s DynaState) SetRotation(m [3][3]float32) { setFieldMat3(s, 16, m) }
func (s DynaState) Position() [3]float32        { return fieldVec3(s, 52) }
func (s DynaState) SetPosition(v [3]float32)    { setFieldVec3(s, 52, v) }
func (s DynaState) LinearSpeed() [3]float32     { return fieldVec3(s, 64) }
func (s DynaState) SetLinearSpeed(v [3]float32) { setFieldVec3(s, 64, v) }
func (s DynaState) AddLinearSpeed() [3]float32  { return fieldVec3(s, 76) }
func (s DynaState) AngularSpeed() [3]float32    { return fieldVec3(s, 88) }
func (s DynaState) SetAngularSpeed(v [3]float32) {
	setFieldVec3(s, 88, v)
}
func (s DynaState) Force() [3]float32                  { return fieldVec3(s, 100) }
func (s DynaState) Torque() [3]float32                 { return fieldVec3(s, 112) }
func (s DynaState) InverseInertiaTensor() [3][3]float32 { return fieldMat3(s, 124) }
func (s DynaState) NotTweakedLinearSpeed() [3]float32  { return fieldVec3(s, 164) }
func (s DynaState) Owner() int32                       { return fieldInt32(s, 176) }

// PlayerInfo is a view over the player info section: race and lap timing,
// checkpoint counters and race status.
type PlayerInfo []byte

func (p PlayerInfo) Team() uint32             { return fieldUint32(p, 576) }
func (p PlayerInfo) PrevRaceTime() int32      { return fieldInt32(p, 680) }
func (p PlayerInfo) RaceStartTime() uint32    { return fieldUint32(p, 684) }
func (p PlayerInfo) RaceTime() int32          { return fieldInt32(p, 688) }
func (p PlayerInfo) RaceBestTime() uint32     { return fieldUint32(p, 692) }
func (p PlayerInfo) LapStartTime() uint32     { return fieldUint32(p, 696) }
func (p PlayerInfo) LapTime() uint32          { return fieldUint32(p, 700) }
func (p PlayerInfo) LapBestTime() int32       { return fieldInt32(p, 704) }
func (p PlayerInfo) MinRespawns() uint32      { return fieldUint32(p, 708) }
func (p PlayerInfo) NbCompleted() uint32      { return fieldUint32(p, 712) }
func (p PlayerInfo) MaxCompleted() uint32     { return fieldUint32(p, 716) }
func (p PlayerInfo) StuntsScore() uint32      { return fieldUint32(p, 720) }
func (p PlayerInfo) BestStuntsScore() uint32  { return fieldUint32(p, 724) }
func (p PlayerInfo) CurCheckpoint() uint32    { return fieldUint32(p, 728) }
func (p PlayerInfo) AverageRank() float32     { return fieldFloat32(p, 732) }
func (p PlayerInfo) CurrentRaceRank() uint32  { return fieldUint32(p, 736) }
func (p PlayerInfo) CurrentRoundRank() uint32 { return fieldUint32(p, 740) }
func (p PlayerInfo) CurrentTime() uint32      { return fieldUint32(p, 776) }
func (p PlayerInfo) RaceState() uint32        { return fieldUint32(p, 788) }
func (p PlayerInfo) ReadyEnum() uint32        { return fieldUint32(p, 792) }
func (p PlayerInfo) RoundNum() uint32         { return fieldUint32(p, 796) }
func (p PlayerInfo) OffsetCurrentCP() float32 { return fieldFloat32(p, 800) }
func (p PlayerInfo) CurLapCPCount() uint32    { return fieldUint32(p, 816) }
func (p PlayerInfo) CurCPCount() uint32       { return fieldUint32(p, 820) }
func (p PlayerInfo) CurLap() uint32           { return fieldUint32(p, 824) }
func (p PlayerInfo) RaceFinished() bool       { return fieldBool(p, 828) }
func (p PlayerInfo) DisplaySpeed() int32      { return fieldInt32(p, 832) }
func (p PlayerInfo) FinishNotPassed() bool    { return fieldBool(p, 836) }
func (p PlayerInfo) CountdownTime() int32     { return fieldInt32(p, 916) }

// SceneVehicleCar is a view over the scene vehicle section: raw input
// values, gearbox, engine and contact state.
type SceneVehicleCar []byte

func (c SceneVehicleCar) IsUpdateAsync() bool         { return fieldBool(c, 76) }
func (c SceneVehicleCar) InputGas() float32           { return fieldFloat32(c, 80) }
func (c SceneVehicleCar) InputBrake() float32         { return fieldFloat32(c, 84) }
func (c SceneVehicleCar) InputSteer() float32         { return fieldFloat32(c, 88) }
func (c SceneVehicleCar) HornLimit() int32            { return fieldInt32(c, 148) }
func (c SceneVehicleCar) MaxLinearSpeed() float32     { return fieldFloat32(c, 736) }
func (c SceneVehicleCar) GearboxState() int32         { return fieldInt32(c, 740) }
func (c SceneVehicleCar) BlockFlags() int32           { return fieldInt32(c, 744) }
func (c SceneVehicleCar) HasAnyLateralContact() bool  { return fieldBool(c, 1500) }
func (c SceneVehicleCar) TurningRate() float32        { return fieldFloat32(c, 1512) }
func (c SceneVehicleCar) TurboBoostFactor() float32   { return fieldFloat32(c, 1524) }
func (c SceneVehicleCar) LastTurboTime() int32        { return fieldInt32(c, 1532) }
func (c SceneVehicleCar) TurboType() int32            { return fieldInt32(c, 1536) }
func (c SceneVehicleCar) IsFreewheeling() bool        { return fieldBool(c, 1548) }
func (c SceneVehicleCar) IsSliding() bool             { return fieldBool(c, 1576) }
func (c SceneVehicleCar) BurnoutState() int32         { return fieldInt32(c, 1692) }
func (c SceneVehicleCar) CurrentLocalSpeed() [3]float32 {
	return fieldVec3(c, 1804)
}

// Engine is a view over the engine sub-struct.
func (c SceneVehicleCar) Engine() Engine {
	return Engine(c[1436:1484])
}

type Engine []byte

func (e Engine) MaxRPM() float32        { return fieldFloat32(e, 0) }
func (e Engine) BrakingFactor() float32 { return fieldFloat32(e, 20) }
func (e Engine) ClampedRPM() float32    { return fieldFloat32(e, 24) }
func (e Engine) ActualRPM() float32     { return fieldFloat32(e, 28) }
func (e Engine) SlideFactor() float32   { return fieldFloat32(e, 32) }
func (e Engine) RearGear() int32        { return fieldInt32(e, 40) }
func (e Engine) Gear() int32            { return fieldInt32(e, 44) }

// SimulationWheels is a view over the simulation wheels section, holding
// NumWheels wheel entries.
type SimulationWheels []byte

func (w SimulationWheels) Wheel(i int) SimulationWheel {
	return SimulationWheel(w[i*WheelSize : (i+1)*WheelSize])
}

// SimulationWheel is a view over a single wheel entry. The real time state
// sub-struct starts at offset 180.
type SimulationWheel []byte

func (w SimulationWheel) Steerable() bool              { return fieldBool(w, 4) }
func (w SimulationWheel) OffsetFromVehicle() [3]float32 { return fieldVec3(w, 168) }
func (w SimulationWheel) DamperAbsorb() float32        { return fieldFloat32(w, 180) }
func (w SimulationWheel) HasGroundContact() bool       { return fieldBool(w, 292) }
func (w SimulationWheel) ContactMaterialID() int32     { return fieldInt32(w, 296) }
func (w SimulationWheel) IsSliding() bool              { return fieldBool(w, 300) }
func (w SimulationWheel) NbGroundContacts() int32      { return fieldInt32(w, 320) }
func (w SimulationWheel) ContactRelativeLocalDistance() [3]float32 {
	return fieldVec3(w, 352)
}
